package stream

import (
	"bytes"
	"encoding/json"
)

var (
	dataLinePrefix = []byte("0:")
	ssePrefix      = []byte("data:")
	sseDone        = []byte("[DONE]")
)

// DataStreamEnvelope is the advisory endpoint's wire format: each token is
// one line of the form `0:<json-string>`. Lines with any other prefix and
// lines whose payload is not a JSON string are skipped.
type DataStreamEnvelope struct{}

func (DataStreamEnvelope) DecodeLine(line []byte) (string, bool) {
	payload, found := bytes.CutPrefix(line, dataLinePrefix)
	if !found {
		return "", false
	}

	var token string
	if err := json.Unmarshal(payload, &token); err != nil {
		return "", false
	}
	return token, true
}

// FormatDataLine frames one token as a data-stream line, terminator included
func FormatDataLine(token string) []byte {
	payload, _ := json.Marshal(token)

	line := make([]byte, 0, len(dataLinePrefix)+len(payload)+1)
	line = append(line, dataLinePrefix...)
	line = append(line, payload...)
	return append(line, '\n')
}

// SSEEnvelope decodes the model provider's server-sent event stream: lines
// of the form `data: <chat-completion-chunk>` carrying a delta content
// fragment, terminated by `data: [DONE]`. Comment lines, other fields, and
// malformed chunks are skipped.
type SSEEnvelope struct{}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (SSEEnvelope) DecodeLine(line []byte) (string, bool) {
	payload, found := bytes.CutPrefix(line, ssePrefix)
	if !found {
		return "", false
	}

	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, sseDone) {
		return "", false
	}

	var chunk chatCompletionChunk
	if err := json.Unmarshal(payload, &chunk); err != nil {
		return "", false
	}
	if len(chunk.Choices) == 0 {
		return "", false
	}
	return chunk.Choices[0].Delta.Content, true
}
