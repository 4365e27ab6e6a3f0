package kpi

import "fmt"

// ExtractionError indica um evento com formato inesperado.
type ExtractionError struct {
	Field string
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evento malformado: %v", e.Err)
	}
	return fmt.Sprintf("evento malformado: seção '%s' ausente", e.Field)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// EmitError indica falha ao gravar o ponto no destino (rede, rejeição, timeout).
type EmitError struct {
	Err error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("falha ao enviar métricas: %v", e.Err)
}

func (e *EmitError) Unwrap() error {
	return e.Err
}
