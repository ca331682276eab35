package server

import (
	"bytes"
	"encoding/json"

	"github.com/Rana718/jsonsql/internal/types"
)

type GenerateRequest struct {
	TableName  string          `json:"tableName"`
	JSONData   json.RawMessage `json:"jsonData"`
	IncludeDDL bool            `json:"includeDdl"`
	BatchMode  bool            `json:"batchMode"`
	Dialect    string          `json:"dialect"`
}

// payload returns jsonData as raw JSON text. A JSON string holding an encoded
// document is unwrapped so clients may send either form.
func (r GenerateRequest) payload() string {
	raw := bytes.TrimSpace(r.JSONData)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

func (r GenerateRequest) toDomain() types.GenerationRequest {
	return types.GenerationRequest{
		TableName:  r.TableName,
		JSONData:   r.payload(),
		IncludeDDL: r.IncludeDDL,
		BatchMode:  r.BatchMode,
		Dialect:    r.Dialect,
	}
}

type GenerationResponse struct {
	SQLScript      string   `json:"sqlScript"`
	Statements     []string `json:"statements"`
	TableName      string   `json:"tableName"`
	StatementCount int      `json:"statementCount"`
	Warnings       []string `json:"warnings"`
	Errors         []string `json:"errors"`
}

func newGenerationResponse(res types.GenerationResult) GenerationResponse {
	return GenerationResponse{
		SQLScript:      res.Script,
		Statements:     res.Statements,
		TableName:      res.TableName,
		StatementCount: res.StatementCount,
		Warnings:       res.Warnings,
		Errors:         res.Errors,
	}
}
