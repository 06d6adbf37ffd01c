package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kits-invoicing/internal/domain/entity"
	"github.com/jhoicas/kits-invoicing/internal/domain/invoicing"
)

//go:embed views
var viewsFS embed.FS

// LayoutMain layout común de todas las páginas.
const LayoutMain = "layouts/main"

var departmentLabels = map[string]string{
	entity.DepartmentRobotics:   "Robotics",
	entity.DepartmentITARVR:     "IT / AR-VR",
	entity.Department3DPrinting: "3D Printing",
}

// NewViewEngine motor html/template sobre las vistas embebidas en el binario.
func NewViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err) // el directorio está embebido; sólo falla si se renombra
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFunc("money", func(d decimal.Decimal) string { return invoicing.FormatAmount(d) })
	engine.AddFunc("departments", func(tags []string) string {
		labels := make([]string, 0, len(tags))
		for _, t := range tags {
			if l, ok := departmentLabels[t]; ok {
				labels = append(labels, l)
			} else {
				labels = append(labels, t)
			}
		}
		return strings.Join(labels, ", ")
	})
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	engine.AddFunc("alertClass", func(category string) string {
		if category == FlashError {
			return "danger"
		}
		return category
	})
	return engine
}
