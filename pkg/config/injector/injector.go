package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/raywall/callkpi-adapter/envloader"
	"github.com/raywall/callkpi-adapter/pkg/cloud"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.INFLUX_TOKEN}, ${ssm./callkpi/token}, ${secret.influx/prod#token}
var pattern = regexp.MustCompile(`\$\{([a-z]+)\.([^}]+)\}`)

// Resolver busca o valor de uma chave em uma fonte (env, ssm, secret...).
type Resolver func(ctx context.Context, key string) (string, error)

// Injector substitui referências ${tipo.chave} nos campos string de uma struct.
type Injector struct {
	resolvers map[string]Resolver
}

// New cria um Injector com os resolvers informados, indexados pelo tipo.
// Referências com tipo sem resolver são mantidas como estão.
func New(resolvers map[string]Resolver) *Injector {
	return &Injector{resolvers: resolvers}
}

// Default monta o Injector com env (via lookup), SSM Parameter Store e
// Secrets Manager. A região AWS vem de AWS_REGION.
func Default(lookup envloader.LookupFunc) *Injector {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	region, _ := lookup("AWS_REGION")

	return New(map[string]Resolver{
		"env": func(_ context.Context, key string) (string, error) {
			val, _ := lookup(key)
			return val, nil
		},
		"ssm": func(ctx context.Context, key string) (string, error) {
			return cloud.Parameter(ctx, region, key)
		},
		"secret": func(ctx context.Context, key string) (string, error) {
			return cloud.Secret(ctx, region, key)
		},
	})
}

// Inject percorre target (ponteiro para struct) e resolve as referências.
func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			field := v.Field(k)
			if !field.CanSet() {
				continue
			}
			if err := i.injectRecursive(ctx, field); err != nil {
				return fmt.Errorf("%s: %w", v.Type().Field(k).Name, err)
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		newValue, err := i.interpolateString(ctx, v.String())
		if err != nil {
			return err
		}
		v.SetString(newValue)

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.injectRecursive(ctx, v.Index(j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// interpolateString realiza a substituição baseada em Regex
func (i *Injector) interpolateString(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var err error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		if err != nil {
			return match
		}
		parts := pattern.FindStringSubmatch(match)
		resolver, ok := i.resolvers[parts[1]]
		if !ok {
			return match
		}

		val, resolveErr := resolver(ctx, parts[2])
		if resolveErr != nil {
			err = fmt.Errorf("falha ao resolver '%s': %w", match, resolveErr)
			return match
		}
		return val
	})

	return result, err
}
