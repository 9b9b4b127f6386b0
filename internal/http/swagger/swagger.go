package swagger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SpecPath путь, по которому отдаётся OpenAPI-спецификация.
const SpecPath = "/swagger/openapi.yml"

const uiHTML = `<!DOCTYPE html>
<html lang="ko">
<head>
  <meta charset="UTF-8">
  <title>ANA Daily Algorithm · Swagger</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({
        url: '` + SpecPath + `',
        dom_id: '#swagger-ui',
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    };
  </script>
</body>
</html>`

// RegisterRoutes подключает Swagger UI и файл спецификации.
// Пустая спецификация отдаётся как 204, UI при этом остаётся доступным.
func RegisterRoutes(mux chi.Router, spec []byte) {
	mux.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(uiHTML))
	})
	mux.Get(SpecPath, func(w http.ResponseWriter, r *http.Request) {
		if len(spec) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec)
	})
}
