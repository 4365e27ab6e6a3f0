package kpi

import (
	"encoding/json"
	"strconv"
)

// Number é um valor numérico repassado como veio do motor de captura:
// inteiros continuam inteiros e frações continuam float.
type Number struct {
	i       int64
	f       float64
	isFloat bool
}

func Int(v int64) Number {
	return Number{i: v}
}

func Float(v float64) Number {
	return Number{f: v, isFloat: true}
}

// ParseNumber converte o literal JSON. Literal vazio (campo ausente) vale 0.
func ParseNumber(n json.Number) (Number, error) {
	if n == "" {
		return Int(0), nil
	}
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return Number{}, err
	}
	return Float(f), nil
}

// Add soma dois valores. Basta um deles ser float para o resultado ser float.
func (n Number) Add(o Number) Number {
	if !n.isFloat && !o.isFloat {
		return Int(n.i + o.i)
	}
	return Float(n.Float64() + o.Float64())
}

func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// Value devolve int64 ou float64, no formato esperado pelos campos do ponto.
func (n Number) Value() interface{} {
	if n.isFloat {
		return n.f
	}
	return n.i
}

func (n Number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}
