// Package callkpi envia os KPIs de chamadas HTTP observadas por um motor de
// captura de tráfego (latência, banda e status) para o InfluxDB v2, com tags
// de identidade de origem e destino, para visualização posterior no Grafana.
//
// Visão Geral:
// Para cada transação capturada o adaptador executa um pipeline síncrono:
//
//	motor de captura -> gate de ativação -> filtro (http) -> extração -> InfluxDB
//
// Falhas de extração ou de envio são logadas e descartadas; nunca voltam para
// quem chamou o hook.
//
// Sub-Pacotes Principais:
//
// 1. envloader e pkg/config:
//   - Carregamento das variáveis INFLUXDB_* (e das de ambiente) via tags "env" e "envDefault".
//   - Referências ${ssm./path} e ${secret.id} resolvidas no SSM / Secrets Manager.
//   - Gate de ativação: sem INFLUXDB_URL, INFLUXDB_TOKEN ou INFLUXDB_ORG o adaptador fica inativo.
//
// 2. pkg/capture e pkg/kpi:
//   - Contrato do item capturado (JSON) e a extração de métricas e tags.
//   - Nome e namespace não resolvidos viram "unresolved".
//
// 3. pkg/influx:
//   - Escrita bloqueante de um ponto por chamada, sem batch e sem retry.
//
// 4. pkg/hook:
//   - Handler.OnEvent, o único ponto de entrada chamado pelo motor de captura.
//
// 5. pkg/transport e cmd/server:
//   - Runtimes que entregam os itens ao hook: HTTP local, Lambda, SQS e Redis pub/sub.
//
// Variáveis de Ambiente:
//
//	INFLUXDB_URL          obrigatória
//	INFLUXDB_TOKEN        obrigatória
//	INFLUXDB_ORG          obrigatória
//	INFLUXDB_BUCKET       default "Kubeshark"
//	INFLUXDB_MEASUREMENT  default "callKPIs"
//	INFLUXDB_TIMEOUT      default "10s"
//	RUNTIME               local | lambda | sqs | redis
//
// Exemplo de Uso Embutido:
//
//	cfg, err := config.Load(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	appLog := logger.Configure(cfg.Logging)
//	writer := influx.NewWriter(appLog)
//	defer writer.Close()
//
//	h := hook.New(cfg.Influx, writer, appLog, nil)
//	h.OnEvent(ctx, item) // chamado pelo motor de captura a cada transação
package callkpi
