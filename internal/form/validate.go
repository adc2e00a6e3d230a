package form

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arellano-digital/alternativas-backend/api/validators"
	"github.com/arellano-digital/alternativas-backend/internal/cart"
	"github.com/arellano-digital/alternativas-backend/pkg/db/models"
)

// Field identifies one validated input of the registration form.
type Field string

const (
	FieldCluster     Field = "cluster"
	FieldEmail       Field = "email"
	FieldCodigo      Field = "codigo"
	FieldBusqueda    Field = "busqueda"
	FieldInventarios Field = "inventarios"
	FieldPrecio      Field = "precio"
)

// fieldOrder is the focus priority: when several fields are invalid the
// form jumps to the first one in this order.
var fieldOrder = []Field{FieldCluster, FieldEmail, FieldCodigo, FieldBusqueda, FieldInventarios, FieldPrecio}

// generalFields are validated on submission of the whole batch.
var generalFields = []Field{FieldCluster, FieldEmail, FieldCodigo}

// itemFields are validated when a line item is added or edited.
var itemFields = []Field{FieldBusqueda, FieldInventarios, FieldPrecio}

// Draft is the line item currently being edited, before it enters the cart.
// Busqueda holds the raw search text; the nankey and description are filled
// only when the auditor picks a suggestion.
type Draft struct {
	Busqueda           string
	Nankey             int64
	Description        string
	InventarioSala     int
	InventarioDeposito int
	InventarioFrio     int
	Precio             decimal.Decimal
}

func (d Draft) toLineItem() cart.LineItem {
	return cart.LineItem{
		Nankey:             d.Nankey,
		Description:        strings.TrimSpace(d.Description),
		InventarioSala:     d.InventarioSala,
		InventarioDeposito: d.InventarioDeposito,
		InventarioFrio:     d.InventarioFrio,
		Precio:             d.Precio,
	}
}

// validateField returns the error messages for one field given the current
// header values and draft. An empty slice means the field is valid.
func (o *Orchestrator) validateField(f Field) []string {
	switch f {
	case FieldCluster:
		if !models.ValidCluster(o.general.Get().Cluster) {
			return []string{"selecciona un cluster"}
		}
	case FieldEmail:
		email := validators.SanitizeEmail(o.general.Get().Email)
		if email == "" {
			return []string{"ingresa tu correo"}
		}
		if !strings.Contains(email, "@") || !strings.HasSuffix(email, o.emailDomain) {
			return []string{"usa tu correo " + o.emailDomain}
		}
	case FieldCodigo:
		raw := strings.TrimSpace(o.general.Get().Codigo)
		if raw == "" {
			return []string{"ingresa el codigo de alternativa"}
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return []string{"el codigo debe ser un numero positivo"}
		}
	case FieldBusqueda:
		if o.draft.Nankey <= 0 {
			return []string{"selecciona un producto de la lista"}
		}
	case FieldInventarios:
		if o.draft.InventarioSala < 0 || o.draft.InventarioDeposito < 0 || o.draft.InventarioFrio < 0 {
			return []string{"los inventarios no pueden ser negativos"}
		}
		if !o.draft.toLineItem().HasInventory() {
			return []string{"registra inventario en al menos una ubicacion"}
		}
	case FieldPrecio:
		if !o.draft.Precio.IsPositive() {
			return []string{"ingresa un precio mayor a 0"}
		}
	}
	return nil
}

// mapBackendField translates a server-side field name onto the form field
// that owns it, so rejection detail lands next to the right input.
func mapBackendField(name string) (Field, bool) {
	switch name {
	case "cluster":
		return FieldCluster, true
	case "correoArellano":
		return FieldEmail, true
	case "codigoAlternativa":
		return FieldCodigo, true
	case "productDesc", "nankey":
		return FieldBusqueda, true
	case "inventarioSala", "inventarioDeposito", "inventarioFrio":
		return FieldInventarios, true
	case "precio":
		return FieldPrecio, true
	}
	return "", false
}
