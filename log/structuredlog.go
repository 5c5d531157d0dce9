package log

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// StructuredLog is one codec event: what was encoded or decoded, its type and
// the wire bytes involved.
type StructuredLog struct {
	Time     time.Time `json:"time"`
	Module   string    `json:"module"`
	Event    string    `json:"event"`
	Type     string    `json:"type,omitempty"`
	Consumed int       `json:"consumed,omitempty"`
	Elapsed  uint32    `json:"elapsed,omitempty"`
	Payload  string    `json:"codec_encoded,omitempty"`
	Err      string    `json:"error,omitempty"`
}

var fieldOrder = []string{"time", "module", "event", "type", "consumed", "elapsed", "codec_encoded", "error"}

// MarshalJSON keeps the field order stable and omits zero values.
func (l StructuredLog) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	writeField := func(key string, val []byte) {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, `"%s":`, key)
		buf.Write(val)
	}
	for _, f := range fieldOrder {
		switch f {
		case "time":
			b, _ := json.Marshal(l.Time)
			writeField(f, b)
		case "module":
			b, _ := json.Marshal(l.Module)
			writeField(f, b)
		case "event":
			b, _ := json.Marshal(l.Event)
			writeField(f, b)
		case "type":
			if l.Type != "" {
				b, _ := json.Marshal(l.Type)
				writeField(f, b)
			}
		case "consumed":
			if l.Consumed != 0 {
				writeField(f, []byte(strconv.Itoa(l.Consumed)))
			}
		case "elapsed":
			if l.Elapsed != 0 {
				writeField(f, []byte(strconv.FormatUint(uint64(l.Elapsed), 10)))
			}
		case "codec_encoded":
			if l.Payload != "" {
				b, _ := json.Marshal(l.Payload)
				writeField(f, b)
			}
		case "error":
			if l.Err != "" {
				b, _ := json.Marshal(l.Err)
				writeField(f, b)
			}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewStructuredLog builds an event record. Recognized keys in kv are "type",
// "consumed", "elapsed", "err" and "time".
func NewStructuredLog(module, event string, payload []byte, kv ...interface{}) StructuredLog {
	l := StructuredLog{
		Time:   time.Now().UTC(),
		Module: module,
		Event:  event,
	}
	if len(payload) > 0 {
		l.Payload = hex.EncodeToString(payload)
	}
	kvMap := toMap(kv...)
	if v, ok := kvMap["type"]; ok {
		l.Type = fmt.Sprint(v)
	}
	if v, ok := kvMap["consumed"]; ok {
		l.Consumed = int(parseUint32(v))
	}
	if v, ok := kvMap["elapsed"]; ok {
		l.Elapsed = parseUint32(v)
	}
	if v, ok := kvMap["err"]; ok && v != nil {
		l.Err = fmt.Sprint(v)
	}
	if v, ok := kvMap["time"]; ok {
		if t, ok := v.(time.Time); ok {
			l.Time = t
		}
	}
	return l
}

// Structured emits a codec event as a single debug record when module is enabled.
func Structured(module, event string, payload []byte, kv ...interface{}) {
	if !isModuleEnabled(module) {
		return
	}
	msgBytes, err := json.Marshal(NewStructuredLog(module, event, payload, kv...))
	if err != nil {
		Error(module, "Structured: Failed to marshal event", "err", err)
		return
	}
	Root().Write(LevelDebug, module, event, "structured", json.RawMessage(msgBytes))
}

func toMap(kv ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			m[k] = kv[i+1]
		}
	}
	return m
}

func parseUint32(v interface{}) uint32 {
	switch t := v.(type) {
	case int:
		return uint32(t)
	case int64:
		return uint32(t)
	case float64:
		return uint32(t)
	case uint32:
		return t
	case uint64:
		return uint32(t)
	case string:
		if n, err := strconv.ParseUint(t, 10, 32); err == nil {
			return uint32(n)
		}
	}
	return 0
}
