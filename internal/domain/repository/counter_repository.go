package repository

// CounterRepository puerto del numerador secuencial de cotizaciones.
//
// Next debe ser un read-modify-write atómico contra el contador compartido:
// es el único punto del sistema donde se exige atomicidad verdadera, para
// garantizar que nunca se emitan dos cotizaciones con el mismo número.
type CounterRepository interface {
	Next(name string) (int64, error)
}
