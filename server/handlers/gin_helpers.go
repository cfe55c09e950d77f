package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"iluminati/graph"
	apperrors "iluminati/server/errors"
)

const maxJSONBody = 10 << 20

// queryInt читает целый параметр запроса; некорректное значение заменяется значением по умолчанию
func queryInt(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return def
}

// queryCountries собирает коды стран из ?country=SK&country=CZ и ?countries=SK,CZ
func queryCountries(c *gin.Context) []string {
	var out []string
	for _, v := range append(c.QueryArray("country"), c.QueryArray("countries")...) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// decodeJSON разбирает тело запроса в map с числами json.Number
func decodeJSON(c *gin.Context) (map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxJSONBody+1))
	if err != nil {
		return nil, apperrors.NewValidationError("Telo požiadavky sa nepodarilo prečítať", err)
	}
	if len(body) > maxJSONBody {
		return nil, apperrors.NewPayloadTooLargeError("Telo požiadavky je príliš veľké", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, apperrors.NewValidationError("Neplatný JSON", err)
	}
	if obj == nil {
		return nil, apperrors.NewValidationError("Očakáva sa JSON objekt", nil)
	}
	return obj, nil
}

// graphFromBody принимает {nodes, edges} либо {graphData: {nodes, edges}}
func graphFromBody(obj map[string]any) (*graph.Graph, error) {
	if inner, ok := obj["graphData"].(map[string]any); ok {
		obj = inner
	}
	g, err := graph.FromMap(obj)
	if err != nil {
		return nil, apperrors.NewValidationError("Neplatný graf", err)
	}
	if err := g.Validate(); err != nil {
		return nil, apperrors.NewValidationError("Neplatný graf", err)
	}
	return g, nil
}

// setAttachment выставляет заголовки скачивания файла
func setAttachment(c *gin.Context, fileName, contentType string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	c.Header("Cache-Control", "no-store")
}

// writeAttachment буферизует выгрузку, чтобы ошибка генерации не оборвала уже начатый ответ
func writeAttachment(c *gin.Context, fileName, contentType string, write func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	setAttachment(c, fileName, contentType)
	_, err := c.Writer.Write(buf.Bytes())
	return err
}
