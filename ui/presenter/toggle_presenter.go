package presenter

// ToggleModel provides on/off state access.
type ToggleModel interface {
	On() bool
	Set(bool) bool
}

// TintTarget receives the tint state.
type TintTarget interface {
	SetTint(enabled bool)
}

// ToggleView reflects the tint state on its button.
type ToggleView interface {
	SetTintButton(on bool)
}

// TintPresenter owns presentation logic for toggling the tint overlay.
type TintPresenter struct {
	model  ToggleModel
	target TintTarget
	view   ToggleView
	saver  func(on bool)
}

// NewTintPresenter wires the presenter; saver persists the state and may be nil.
func NewTintPresenter(model ToggleModel, target TintTarget, view ToggleView, saver func(on bool)) *TintPresenter {
	return &TintPresenter{model: model, target: target, view: view, saver: saver}
}

// Set applies the state to target and view. Idempotent.
func (p *TintPresenter) Set(on bool) {
	if p == nil || p.model == nil || p.target == nil || p.view == nil {
		return
	}
	if !p.model.Set(on) {
		return
	}
	p.target.SetTint(on)
	p.view.SetTintButton(on)
	if p.saver != nil {
		p.saver(on)
	}
}

// Toggle flips the state.
func (p *TintPresenter) Toggle() {
	if p == nil || p.model == nil {
		return
	}
	p.Set(!p.model.On())
}
