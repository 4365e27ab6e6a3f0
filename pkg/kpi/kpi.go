// Package kpi contém a lógica de decisão do adaptador: filtro de protocolo e
// extração das métricas e tags de uma chamada HTTP capturada.
package kpi

import (
	"encoding/json"

	"github.com/raywall/callkpi-adapter/pkg/capture"
)

const (
	// ProtocolHTTP é o único protocolo de aplicação processado.
	ProtocolHTTP = "http"

	// Unresolved substitui nome/namespace que o motor de captura não resolveu.
	Unresolved = "unresolved"
)

// Chaves das tags, na ordem em que são emitidas.
const (
	TagDstName = "dst_name"
	TagDstIP   = "dst_ip"
	TagDstPort = "dst_port"
	TagDstNS   = "dst_ns"
	TagSrcName = "src_name"
	TagSrcIP   = "src_ip"
	TagSrcNS   = "src_ns"
	TagPath    = "path"
	TagNode    = "node"
)

// Nomes dos campos do ponto.
const (
	FieldLatency   = "latency"
	FieldStatus    = "status"
	FieldBandwidth = "bandwidth"
)

// MetricSet são os valores numéricos de uma chamada.
type MetricSet struct {
	Latency   Number
	Bandwidth Number
	Status    Number
}

// Fields devolve as métricas no formato de campos do ponto.
func (m MetricSet) Fields() map[string]interface{} {
	return map[string]interface{}{
		FieldLatency:   m.Latency.Value(),
		FieldStatus:    m.Status.Value(),
		FieldBandwidth: m.Bandwidth.Value(),
	}
}

type Tag struct {
	Key   string
	Value string
}

// TagSet é a lista ordenada de tags de identidade. Sempre contém as nove chaves.
type TagSet []Tag

// Get retorna o valor da tag e se ela existe.
func (t TagSet) Get(key string) (string, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

func (t TagSet) Map() map[string]string {
	m := make(map[string]string, len(t))
	for _, tag := range t {
		m[tag.Key] = tag.Value
	}
	return m
}

// IsEligible indica se o evento deve gerar um ponto (apenas protocolo http).
// Evento sem a seção protocol não é elegível; CheckProtocol diferencia esse caso.
func IsEligible(ev capture.Event) bool {
	return ev.ProtocolName() == ProtocolHTTP
}

// CheckProtocol rejeita eventos sem a seção protocol. Eles são malformados,
// não apenas de outro protocolo.
func CheckProtocol(ev capture.Event) error {
	if ev.Protocol == nil {
		return &ExtractionError{Field: "protocol"}
	}
	return nil
}

// Extract mapeia um evento elegível em métricas e tags.
//
// Valores numéricos (inteiros ou frações), ip, porta e path passam sem
// validação de faixa. Só nome e namespace de origem/destino recebem o
// sentinela Unresolved quando vazios.
// Seções estruturais ausentes (src, dst, request, response, node) resultam
// em *ExtractionError.
func Extract(ev capture.Event) (MetricSet, TagSet, error) {
	switch {
	case ev.Src == nil:
		return MetricSet{}, nil, &ExtractionError{Field: "src"}
	case ev.Dst == nil:
		return MetricSet{}, nil, &ExtractionError{Field: "dst"}
	case ev.Request == nil:
		return MetricSet{}, nil, &ExtractionError{Field: "request"}
	case ev.Response == nil:
		return MetricSet{}, nil, &ExtractionError{Field: "response"}
	case ev.Node == nil:
		return MetricSet{}, nil, &ExtractionError{Field: "node"}
	}

	var nums [4]Number
	for i, f := range []struct {
		name  string
		value json.Number
	}{
		{"elapsedTime", ev.ElapsedTime},
		{"requestSize", ev.RequestSize},
		{"responseSize", ev.ResponseSize},
		{"response.status", ev.Response.Status},
	} {
		n, err := ParseNumber(f.value)
		if err != nil {
			return MetricSet{}, nil, &ExtractionError{Field: f.name, Err: err}
		}
		nums[i] = n
	}

	metrics := MetricSet{
		Latency:   nums[0],
		Bandwidth: nums[1].Add(nums[2]),
		Status:    nums[3],
	}

	tags := TagSet{
		{TagDstName, orUnresolved(ev.Dst.Name)},
		{TagDstIP, ev.Dst.IP},
		{TagDstPort, ev.Dst.Port.String()},
		{TagDstNS, orUnresolved(ev.Dst.Namespace)},
		{TagSrcName, orUnresolved(ev.Src.Name)},
		{TagSrcIP, ev.Src.IP},
		{TagSrcNS, orUnresolved(ev.Src.Namespace)},
		{TagPath, ev.Request.Path},
		{TagNode, ev.Node.Name},
	}

	return metrics, tags, nil
}

func orUnresolved(v string) string {
	if v == "" {
		return Unresolved
	}
	return v
}
