package task

// mockedData is the fixed dataset the screen starts from and resets to.
var mockedData = []Task{
	{ID: 1, Title: "Comprar pan", Description: "Pasar por la panadería antes de las 9", State: NotDone},
	{ID: 2, Title: "Llamar al médico", Description: "Pedir turno para el control anual", State: Done},
	{ID: 3, Title: "Estudiar Go", Description: "Terminar el capítulo de concurrencia", State: NotDone},
	{ID: 4, Title: "Regar las plantas", Description: "", State: NotDone},
}

// MockedData returns a fresh copy of the built-in dataset.
func MockedData() []Task {
	return Clone(mockedData)
}
