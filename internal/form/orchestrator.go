// Package form coordinates the registration form: the shared header fields,
// the draft line item being edited, the cart, and the final batch
// submission. It owns per-field validation state so the surface driving it
// only has to render errors and forward input.
package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arellano-digital/alternativas-backend/api/validators"
	"github.com/arellano-digital/alternativas-backend/internal/auditors"
	"github.com/arellano-digital/alternativas-backend/internal/cart"
	"github.com/arellano-digital/alternativas-backend/internal/submit"
)

// Submitter posts a batch of line items. *submit.Pipeline satisfies it.
type Submitter interface {
	SubmitAll(ctx context.Context, general cart.GeneralInfo, items []cart.LineItem) (submit.Result, error)
}

// Orchestrator ties header fields, draft, cart and submission together.
// It is not safe for concurrent use; a form session is single-threaded.
type Orchestrator struct {
	general     *cart.GeneralStore
	items       *cart.Store
	submitter   Submitter
	directory   *auditors.Directory
	emailDomain string

	draft       Draft
	touched     map[Field]bool
	fieldErrors map[Field][]string
}

// New returns an orchestrator over the given stores. emailDomain is the
// required suffix for the auditor email, e.g. "@arellano.pe".
func New(general *cart.GeneralStore, items *cart.Store, submitter Submitter, emailDomain string) (*Orchestrator, error) {
	if general == nil || items == nil {
		return nil, fmt.Errorf("form: stores required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("form: submitter required")
	}
	if strings.TrimSpace(emailDomain) == "" {
		return nil, fmt.Errorf("form: email domain required")
	}
	return &Orchestrator{
		general:     general,
		items:       items,
		submitter:   submitter,
		directory:   auditors.NewDirectory(),
		emailDomain: strings.ToLower(strings.TrimSpace(emailDomain)),
		touched:     map[Field]bool{},
		fieldErrors: map[Field][]string{},
	}, nil
}

// LookupAuditors suggests auditors for the email field while the auditor
// types their name or address.
func (o *Orchestrator) LookupAuditors(query string) ([]auditors.Auditor, error) {
	return o.directory.Lookup(query)
}

// SelectAuditor fills the email field from a picked suggestion.
func (o *Orchestrator) SelectAuditor(a auditors.Auditor) error {
	return o.SetEmail(a.Email)
}

// touch marks the field edited and clears its previous error, so the
// auditor is not shown stale complaints while typing. Validation runs only
// on submit intent, via validateGroup.
func (o *Orchestrator) touch(f Field) {
	o.touched[f] = true
	delete(o.fieldErrors, f)
}

// SetCluster stores the selected cluster.
func (o *Orchestrator) SetCluster(cluster string) error {
	info := o.general.Get()
	info.Cluster = strings.TrimSpace(cluster)
	if err := o.general.Set(info); err != nil {
		return err
	}
	o.touch(FieldCluster)
	return nil
}

// SetEmail stores the auditor email, normalized for comparison.
func (o *Orchestrator) SetEmail(email string) error {
	info := o.general.Get()
	info.Email = validators.SanitizeEmail(email)
	if err := o.general.Set(info); err != nil {
		return err
	}
	o.touch(FieldEmail)
	return nil
}

// SetCodigo stores the alternative code as typed.
func (o *Orchestrator) SetCodigo(codigo string) error {
	info := o.general.Get()
	info.Codigo = strings.TrimSpace(codigo)
	if err := o.general.Set(info); err != nil {
		return err
	}
	o.touch(FieldCodigo)
	return nil
}

// SetBusqueda records the raw search text and drops any previously
// selected product, since the text no longer matches it.
func (o *Orchestrator) SetBusqueda(text string) {
	o.draft.Busqueda = text
	o.draft.Nankey = 0
	o.draft.Description = ""
	o.touch(FieldBusqueda)
}

// SelectProduct binds a suggestion to the draft.
func (o *Orchestrator) SelectProduct(nankey int64, description string) {
	o.draft.Nankey = nankey
	o.draft.Description = description
	o.draft.Busqueda = description
	o.touch(FieldBusqueda)
}

// SetInventarios updates the three inventory counts at once.
func (o *Orchestrator) SetInventarios(sala, deposito, frio int) {
	o.draft.InventarioSala = sala
	o.draft.InventarioDeposito = deposito
	o.draft.InventarioFrio = frio
	o.touch(FieldInventarios)
}

// SetPrecio updates the draft price.
func (o *Orchestrator) SetPrecio(precio decimal.Decimal) {
	o.draft.Precio = precio
	o.touch(FieldPrecio)
}

// Draft returns the line item currently being edited.
func (o *Orchestrator) Draft() Draft {
	return o.draft
}

// FieldError returns the current messages for a field, nil when clean.
func (o *Orchestrator) FieldError(f Field) []string {
	return o.fieldErrors[f]
}

// FirstInvalid returns the highest-priority field currently carrying an
// error, for focus placement. ok is false when everything is clean.
func (o *Orchestrator) FirstInvalid() (Field, bool) {
	for _, f := range fieldOrder {
		if len(o.fieldErrors[f]) > 0 {
			return f, true
		}
	}
	return "", false
}

// validateGroup runs validation over a set of fields, marking them all
// touched. It returns true when every field passed.
func (o *Orchestrator) validateGroup(fields []Field) bool {
	ok := true
	for _, f := range fields {
		o.touched[f] = true
		delete(o.fieldErrors, f)
		if msgs := o.validateField(f); len(msgs) > 0 {
			o.fieldErrors[f] = msgs
			ok = false
		}
	}
	return ok
}

// AddItem validates the draft and appends it to the cart, resetting the
// draft on success. It reports whether the item was accepted.
func (o *Orchestrator) AddItem() (bool, error) {
	if !o.validateGroup(itemFields) {
		return false, nil
	}
	if err := o.items.Add(o.draft.toLineItem()); err != nil {
		return false, err
	}
	o.resetDraft()
	return true, nil
}

// UpdateItem validates the draft and replaces the cart entry at index.
func (o *Orchestrator) UpdateItem(index int) (bool, error) {
	if !o.validateGroup(itemFields) {
		return false, nil
	}
	if err := o.items.Update(index, o.draft.toLineItem()); err != nil {
		return false, err
	}
	o.resetDraft()
	return true, nil
}

// EditItem loads the cart entry at index back into the draft.
func (o *Orchestrator) EditItem(index int) error {
	items := o.items.Items()
	if index < 0 || index >= len(items) {
		return fmt.Errorf("form: index %d out of range", index)
	}
	it := items[index]
	o.draft = Draft{
		Busqueda:           it.Description,
		Nankey:             it.Nankey,
		Description:        it.Description,
		InventarioSala:     it.InventarioSala,
		InventarioDeposito: it.InventarioDeposito,
		InventarioFrio:     it.InventarioFrio,
		Precio:             it.Precio,
	}
	return nil
}

// RemoveItem deletes the cart entry at index.
func (o *Orchestrator) RemoveItem(index int) error {
	return o.items.Remove(index)
}

// Items exposes the current cart contents.
func (o *Orchestrator) Items() []cart.LineItem {
	return o.items.Items()
}

func (o *Orchestrator) resetDraft() {
	o.draft = Draft{}
	for _, f := range itemFields {
		delete(o.touched, f)
		delete(o.fieldErrors, f)
	}
}

// SubmitAll validates the header, posts the cart, and on full success
// clears both the cart and the header for the next session. Server-side
// rejections are folded back into the per-field error state.
func (o *Orchestrator) SubmitAll(ctx context.Context) (submit.Result, error) {
	if !o.validateGroup(generalFields) {
		return submit.Result{FailedIndex: -1, Message: "corrige los campos marcados"}, nil
	}
	items := o.items.Items()
	if len(items) == 0 {
		return submit.Result{FailedIndex: -1, Message: "agrega al menos un producto"}, nil
	}

	res, err := o.submitter.SubmitAll(ctx, o.general.Get(), items)
	if err != nil {
		return res, err
	}
	if !res.Success {
		// A failed batch leaves the cart intact.
		o.applyBackendErrors(res.FieldErrors)
		return res, nil
	}

	if err := o.items.Clear(); err != nil {
		return res, err
	}
	if err := o.general.Clear(); err != nil {
		return res, err
	}
	o.touched = map[Field]bool{}
	o.fieldErrors = map[Field][]string{}
	o.draft = Draft{}
	return res, nil
}

func (o *Orchestrator) applyBackendErrors(fieldErrors map[string][]string) {
	for name, msgs := range fieldErrors {
		f, ok := mapBackendField(name)
		if !ok {
			continue
		}
		o.touched[f] = true
		o.fieldErrors[f] = append(o.fieldErrors[f], msgs...)
	}
}
