package httpapi

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// maxBodySize bounds request bodies.
const maxBodySize = 64 << 10

// Serializer encodes and decodes JSON with sonic's standard-library compatible config.
type Serializer struct{}

func (Serializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (Serializer) Deserialize(c echo.Context, i interface{}) error {
	dec := sonic.ConfigStd.NewDecoder(io.LimitReader(c.Request().Body, maxBodySize))
	if err := dec.Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}
	return nil
}
