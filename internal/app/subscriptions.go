package app

import (
	"github.com/dshills/glimpse/internal/config"
	"github.com/dshills/glimpse/internal/event"
)

// watchEvents subscribes to the bus topics and the settings notifier,
// logging a timeline entry for each occurrence. Handles are kept so
// Shutdown can cancel them.
func (a *App) watchEvents() {
	log := a.log.WithComponent("events")

	a.subs = append(a.subs,
		a.bus.Subscribe(event.TopicPreviewShown, func(ev event.Event) {
			p, ok := ev.Payload.(event.PreviewShown)
			if !ok {
				return
			}
			log.Info("preview shown: %s at %s", p.Path, p.Anchor)
		}),
		a.bus.Subscribe(event.TopicPreviewHidden, func(ev event.Event) {
			p, ok := ev.Payload.(event.PreviewHidden)
			if !ok {
				return
			}
			log.Info("preview hidden: %d overlay(s), reason=%s", len(p.RecordIDs), p.Reason)
		}),
		a.bus.Subscribe("mode.**", func(ev event.Event) {
			p, ok := ev.Payload.(event.ModeChanged)
			if !ok {
				return
			}
			log.Info("%s: buffer=%s autoPreview=%v", ev.Topic, p.BufferID, p.AutoPreview)
		}),
		a.bus.Subscribe(event.TopicCursorMoved, func(ev event.Event) {
			p, ok := ev.Payload.(event.CursorMoved)
			if !ok {
				return
			}
			log.Debug("cursor moved: %s -> %s", p.Old, p.New)
		}),
	)

	a.cfgSub = a.cfg.Subscribe(func(ch config.Change) {
		if ch.Type == config.ChangeReload {
			log.Info("settings file reloaded")
			return
		}
		log.Debug("setting changed: %s = %v (was %v, source=%s)", ch.Path, ch.NewValue, ch.OldValue, ch.Source)
	})
}
