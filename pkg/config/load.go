package config

import (
	"context"
	"fmt"
	"os"

	"github.com/raywall/callkpi-adapter/envloader"
	"github.com/raywall/callkpi-adapter/pkg/config/injector"
)

// Load lê a configuração do ambiente do processo. Deve ser chamado uma única
// vez na inicialização; o resultado é passado adiante por referência.
func Load(ctx context.Context) (*AdapterConfig, error) {
	return LoadWithLookup(ctx, os.LookupEnv, injector.Default(os.LookupEnv))
}

// LoadWithLookup é a versão injetável de Load.
//
// Etapas:
//  1. envloader preenche os campos pelas tags env/envDefault.
//  2. O Injector resolve referências ${env.X}, ${ssm./path} e ${secret.id}.
//  3. As seções de ambiente são validadas. Dados ausentes do InfluxDB não
//     geram erro aqui; eles são tratados pelo gate de ativação.
func LoadWithLookup(ctx context.Context, lookup envloader.LookupFunc, inj *injector.Injector) (*AdapterConfig, error) {
	var cfg AdapterConfig

	if err := envloader.LoadWithLookup(&cfg, lookup); err != nil {
		return nil, fmt.Errorf("falha ao ler variáveis de ambiente: %w", err)
	}

	if inj != nil {
		if err := inj.Inject(ctx, &cfg); err != nil {
			return nil, fmt.Errorf("falha na injeção de variáveis: %w", err)
		}
	}

	if err := defaultValidator.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validação da configuração falhou: %w", err)
	}

	return &cfg, nil
}
