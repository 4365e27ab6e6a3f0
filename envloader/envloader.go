// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package envloader

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// LookupFunc resolve o valor bruto de uma variável de ambiente.
//
// Tem a mesma assinatura de os.LookupEnv, o que permite injetar um mapa
// fixo nos testes sem tocar no ambiente do processo.
type LookupFunc func(key string) (string, bool)

var durationType = reflect.TypeOf(time.Duration(0))

// Load preenche uma struct com valores de variáveis de ambiente do processo.
//
// A função itera sobre os campos da struct e usa as tags "env" para buscar
// o valor correspondente. Se a variável não existir ou estiver vazia,
// o valor de "envDefault" será usado.
//
// Parâmetros:
//
//	config: Um ponteiro para a struct que será preenchida.
//
// Retorna:
//
//	error: nil em caso de sucesso ou um erro tipado (`InvalidConfigError`,
//	  `FieldError`) se a operação falhar.
//
// Exemplo:
//
//	cfg := &config.AdapterConfig{}
//	err := envloader.Load(cfg)
func Load(config interface{}) error {
	return LoadWithLookup(config, os.LookupEnv)
}

// LoadWithLookup é igual a Load, mas lê os valores através de lookup.
//
// Uma variável presente porém vazia é tratada como ausente, de modo que
// `INFLUXDB_BUCKET=""` ainda resulta no valor padrão declarado na tag.
func LoadWithLookup(config interface{}, lookup LookupFunc) error {
	val := reflect.ValueOf(config)
	if !val.IsValid() {
		return &InvalidConfigError{}
	}
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: val.Type()}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	return loadStruct(val.Elem(), lookup)
}

// loadStruct processa recursivamente uma struct (ou struct aninhada).
func loadStruct(val reflect.Value, lookup LookupFunc) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		// Structs aninhadas (seções da configuração)
		if field.Kind() == reflect.Struct {
			if err := loadStruct(field, lookup); err != nil {
				return err
			}
			continue
		}

		if field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct {
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			if err := loadStruct(field.Elem(), lookup); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue, _ := lookup(envTag)
		envValue = strings.TrimSpace(envValue)
		if envValue == "" {
			envValue = fieldType.Tag.Get("envDefault")
		}

		// Sem valor e sem default: o campo mantém o zero value
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return &FieldError{
				FieldName: fieldType.Name,
				EnvVar:    envTag,
				Value:     envValue,
				Err:       err,
			}
		}
	}

	return nil
}

// setFieldValue converte a string da variável para o tipo nativo do campo.
//
// Erros:
//   - UnsupportedTypeError: Se o `field.Kind()` não estiver listado no switch.
//   - Erros de conversão do `strconv` ou de `time.ParseDuration`.
func setFieldValue(field reflect.Value, value string) error {
	// time.Duration também é Int64, por isso precisa vir antes do switch
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(intValue)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(uintValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)

	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}

// MustLoad é similar ao Load, mas provoca um panic em caso de erro.
func MustLoad(config interface{}) {
	if err := Load(config); err != nil {
		panic(err)
	}
}
