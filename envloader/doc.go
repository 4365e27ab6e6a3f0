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
//
// Package envloader carrega variáveis de ambiente diretamente para campos
// de uma struct Go, usando as tags `env` (nome da variável) e `envDefault`
// (valor padrão).
//
// Visão Geral:
// O adaptador lê toda a sua configuração do ambiente uma única vez, na
// inicialização do processo. O `envloader` usa reflection para mapear as
// variáveis para os campos tipados da configuração. Suporta string, int,
// uint, bool, float, time.Duration e structs aninhadas (inclusive ponteiros).
//
// Regras:
//   - Variável ausente ou vazia: usa `envDefault`, se existir.
//   - Sem valor e sem default: o campo mantém o zero value.
//   - Falha de conversão: retorna *FieldError com o nome da variável.
//
// Exemplo:
//
//	type InfluxConf struct {
//	    URL    string        `env:"INFLUXDB_URL"`
//	    Bucket string        `env:"INFLUXDB_BUCKET" envDefault:"Kubeshark"`
//	    Timeout time.Duration `env:"INFLUXDB_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg InfluxConf
//	if err := envloader.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Para testes, LoadWithLookup aceita qualquer função com a assinatura de
// os.LookupEnv.
package envloader
