package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/kits-invoicing/internal/application/dto"
	"github.com/jhoicas/kits-invoicing/internal/domain/invoicing"
)

// formValues devuelve todos los valores de un campo repetido (urlencoded o multipart).
func formValues(c *fiber.Ctx, key string) []string {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil
		}
		return form.Value[key]
	}
	raw := c.Request().PostArgs().PeekMulti(key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, string(v))
	}
	return out
}

// formValue copia el valor: FormValue apunta al buffer de fasthttp, que se reutiliza
// en la siguiente petición de la misma conexión.
func formValue(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.FormValue(key))
}

// createInvoiceFromForm arma la petición a partir del formulario de /invoices/new.
// Las filas de servicio llegan como tres listas paralelas.
func createInvoiceFromForm(c *fiber.Ctx) dto.CreateInvoiceRequest {
	raw := invoicing.ZipItems(
		formValues(c, "service_name[]"),
		formValues(c, "quantity[]"),
		formValues(c, "amount[]"),
	)
	items := make([]dto.InvoiceItemRequest, 0, len(raw))
	for _, r := range raw {
		items = append(items, dto.InvoiceItemRequest{ServiceName: r.ServiceName, Quantity: r.Quantity, Amount: r.Amount})
	}
	return dto.CreateInvoiceRequest{
		ClientName:    formValue(c, "client_name"),
		ClientEmail:   formValue(c, "client_email"),
		ClientPhone:   formValue(c, "client_phone"),
		ClientAddress: formValue(c, "client_address"),
		Description:   formValue(c, "description"),
		InvoiceDate:   formValue(c, "invoice_date"),
		DueDate:       formValue(c, "due_date"),
		Departments:   formValues(c, "departments"),
		Items:         items,
		CGST:          c.FormValue("cgst") != "",
		SGST:          c.FormValue("sgst") != "",
	}
}
