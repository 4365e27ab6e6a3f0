// Package capture define o contrato do evento entregue pelo motor de captura
// (uma transação de rede observada) e a decodificação do seu JSON.
package capture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Event é uma transação capturada. Imutável depois de decodificada.
// Seções ausentes no JSON ficam nil e são tratadas pelo extrator.
//
// Os campos numéricos guardam o literal recebido (json.Number): inteiros e
// frações chegam ao extrator sem conversão de tipo.
type Event struct {
	Protocol     *Protocol   `json:"protocol,omitempty"`
	ElapsedTime  json.Number `json:"elapsedTime,omitempty"`
	RequestSize  json.Number `json:"requestSize,omitempty"`
	ResponseSize json.Number `json:"responseSize,omitempty"`
	Request      *Request    `json:"request,omitempty"`
	Response     *Response   `json:"response,omitempty"`
	Src          *Endpoint   `json:"src,omitempty"`
	Dst          *Endpoint   `json:"dst,omitempty"`
	Node         *Node       `json:"node,omitempty"`
}

type Protocol struct {
	Name string `json:"name"`
}

type Request struct {
	Path string `json:"path"`
}

type Response struct {
	Status json.Number `json:"status,omitempty"`
}

// Endpoint identifica a origem ou o destino da chamada. Name e Namespace
// vazios significam "não resolvido pelo motor de captura".
type Endpoint struct {
	Name      string `json:"name,omitempty"`
	IP        string `json:"ip"`
	Port      Port   `json:"port,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

type Node struct {
	Name string `json:"name"`
}

// Port guarda a porta como texto. O motor de captura envia ora número, ora
// string; ambos são aceitos e mantidos sem conversão.
type Port string

func (p *Port) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Port(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("porta deve ser número ou string: %w", err)
	}
	*p = Port(n.String())
	return nil
}

func (p Port) String() string {
	return string(p)
}

// ProtocolName devolve o nome do protocolo, ou "" se a seção não veio.
func (e Event) ProtocolName() string {
	if e.Protocol == nil {
		return ""
	}
	return e.Protocol.Name
}

// PortOf é um atalho para montar eventos em código (ex: testes).
func PortOf(n int) Port {
	return Port(strconv.Itoa(n))
}

// Decode converte o payload JSON de um item capturado em Event.
func Decode(payload []byte) (Event, error) {
	var ev Event
	if len(bytes.TrimSpace(payload)) == 0 {
		return ev, fmt.Errorf("payload vazio")
	}
	if err := json.Unmarshal(payload, &ev); err != nil {
		return ev, fmt.Errorf("erro ao fazer parse do evento: %w", err)
	}
	return ev, nil
}
