package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"prison-admin/internal/apiclient"
	"prison-admin/internal/domain"
	"prison-admin/internal/entity"
	"prison-admin/internal/form"
	"prison-admin/internal/view"
)

// OpenForm opens the create form (id nil) or the edit form of a record.
// Edit forms are prefilled from GET {path}/{id} where the backend offers
// it, otherwise from the row in the loaded list.
func (c *Console) OpenForm(ctx context.Context, name string, id *int64) (view.Modal, error) {
	d, l, err := c.lookup(name)
	if err != nil {
		return view.Modal{}, err
	}
	editing := id != nil
	if editing && !d.CanEdit() || !editing && !d.CanCreate() {
		return view.Modal{}, fmt.Errorf("%w: form for %s", ErrNotAllowed, name)
	}

	defs := d.Fields(editing)
	values := form.Defaults(defs)
	if editing {
		rec, err := c.record(ctx, d, l.State().Records, *id)
		if err != nil {
			c.loadError(err)
			c.logError("Record load failed", "entity", name, "id", *id, "error", err)
			return view.Modal{}, err
		}
		values = form.Prefill(defs, rec)
	}

	c.showForm(ctx, d, id, values, nil)
	return c.modal.Current(), nil
}

func (c *Console) record(ctx context.Context, d *entity.Descriptor, loaded []domain.Record, id int64) (domain.Record, error) {
	if d.Fetchable {
		var rec domain.Record
		if err := c.api.Get(ctx, d.RecordPath(id), &rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	for _, r := range loaded {
		if rid, ok := r.ID(); ok && rid == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %d", ErrRecordNotLoaded, d.Name, id)
}

// showForm renders the form into the modal. The modal content is the only
// copy of unsaved input.
func (c *Console) showForm(ctx context.Context, d *entity.Descriptor, id *int64, values form.Values, errs map[string]string) {
	defs := d.Fields(id != nil)
	f := view.Form{
		Entity: d.Name,
		Title:  d.FormTitle(id != nil),
		ID:     id,
		Fields: form.Render(defs, values, c.fieldOptions(ctx, defs), errs),
	}
	c.modal.OpenForm(f)
}

// fieldOptions resolves the choices of every select backed by a reference
// list. A list that fails to load leaves only the fixed choices.
func (c *Console) fieldOptions(ctx context.Context, defs []form.Def) map[string][]view.Option {
	out := make(map[string][]view.Option)
	for _, def := range defs {
		if def.Source == "" {
			continue
		}
		records, err := c.cache.Get(ctx, def.Source, false)
		if err != nil {
			slog.Warn("Select options unavailable", "field", def.Name, "source", def.Source, "error", err, "component", "Console")
			continue
		}
		out[def.Name] = entity.Options(def.Source, records)
	}
	return out
}

// SubmitForm validates, coerces and sends the open form. id must match the
// record the form was opened for; nil submits the create form. Invalid input is
// shown next to the fields and never reaches the backend. A backend
// failure keeps the modal open with the operator's input.
func (c *Console) SubmitForm(ctx context.Context, name string, id *int64, values form.Values) error {
	d, err := c.entities.Lookup(name)
	if err != nil {
		return err
	}
	if !c.modal.ShowsForm(name, id) {
		return fmt.Errorf("%w: %s", ErrNoOpenForm, name)
	}

	editing := id != nil
	defs := d.Fields(editing)
	if err := form.Validate(defs, values); err != nil {
		c.rejectForm(ctx, d, id, values, err)
		return err
	}
	payload, err := form.Coerce(defs, values)
	if err != nil {
		c.rejectForm(ctx, d, id, values, err)
		return err
	}

	if editing {
		err = c.api.Put(ctx, d.RecordPath(*id), payload, nil)
	} else {
		if d.CreateExtras != nil {
			maps.Copy(payload, d.CreateExtras())
		}
		err = c.api.Post(ctx, d.Path, payload, nil)
	}
	if err != nil {
		c.notifier.Error("Błąd: " + apiclient.Message(err))
		c.logError("Save failed", "entity", name, "error", err)
		c.showForm(ctx, d, id, values, nil)
		return err
	}

	c.modal.Close()
	if editing {
		c.notifier.Success(d.Messages.Updated)
		c.logInfo("Record updated", "entity", name, "id", *id)
	} else {
		c.notifier.Success(d.Messages.Created)
		c.logInfo("Record created", "entity", name)
	}
	c.cache.Invalidate(d.Invalidates...)
	_ = c.reloadPage(ctx, d.Page)
	return nil
}

func (c *Console) rejectForm(ctx context.Context, d *entity.Descriptor, id *int64, values form.Values, err error) {
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	c.showForm(ctx, d, id, values, verr.ByField())
	c.logDebug("Form rejected", "entity", d.Name, "error", err)
}

// Delete removes a record after the operator confirmed. Unconfirmed
// requests never reach the backend. The list is reloaded either way.
func (c *Console) Delete(ctx context.Context, name string, id int64, confirmed bool) error {
	d, err := c.entities.Lookup(name)
	if err != nil {
		return err
	}
	if !d.CanDelete() {
		return fmt.Errorf("%w: delete %s", ErrNotAllowed, name)
	}
	if !confirmed {
		return ErrNotConfirmed
	}

	err = c.api.Delete(ctx, d.RecordPath(id))
	if err != nil {
		prefix := d.Messages.DeleteFailed
		if prefix == "" {
			prefix = "Błąd: "
		}
		c.notifier.Error(prefix + apiclient.Message(err))
		c.logError("Delete failed", "entity", name, "id", id, "error", err)
	} else {
		c.notifier.Success(d.Messages.Deleted)
		c.logInfo("Record deleted", "entity", name, "id", id)
		c.cache.Invalidate(d.Invalidates...)
	}
	_ = c.reloadPage(ctx, d.Page)
	return err
}

// CloseModal hides the overlay, discarding any unsaved input.
func (c *Console) CloseModal() { c.modal.Close() }

// ModalKey forwards a key press to the overlay.
func (c *Console) ModalKey(key string) bool { return c.modal.HandleKey(key) }

// ModalClick forwards a click target to the overlay.
func (c *Console) ModalClick(target string) bool { return c.modal.HandleClick(target) }

// Modal returns the overlay content.
func (c *Console) Modal() view.Modal { return c.modal.Current() }
