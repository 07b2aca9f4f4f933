package agent

import (
	"log/slog"
	"slices"

	"github.com/nstehr/serenity/serenity-core/ipc"
	"github.com/nstehr/serenity/serenity-core/model"
)

// Fleet is our team's roster as the agent knows it. The game server only
// describes bots once, at start; after that it is kept current from move,
// die and damaged events.
type Fleet struct {
	bots map[int]*model.Bot
}

func NewFleet(bots []model.Bot) *Fleet {
	f := &Fleet{bots: make(map[int]*model.Bot, len(bots))}
	for _, b := range bots {
		b.Actions = nil
		f.bots[b.ID] = &b
	}
	return f
}

// Bots returns a copy of the roster sorted by ID.
func (f *Fleet) Bots() []model.Bot {
	out := make([]model.Bot, 0, len(f.bots))
	for _, b := range f.bots {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b model.Bot) int { return a.ID - b.ID })
	return out
}

func (f *Fleet) Alive() int { return model.CountAlive(f.Bots()) }

// Apply updates the roster from a round's wire events and returns the events
// the decision engine acts on, in arrival order.
func (f *Fleet) Apply(events []ipc.WireEvent, log *slog.Logger) []model.Event {
	var out []model.Event
	for _, ev := range events {
		switch ev.Event {
		case ipc.EventDie:
			if b, ok := f.bots[ev.BotID]; ok {
				b.Alive = false
				log.Info("bot destroyed", "bot", ev.BotID)
			}
		case ipc.EventMove:
			if b, ok := f.bots[ev.BotID]; ok && ev.Pos != nil {
				b.Pos = *ev.Pos
			}
		case ipc.EventNoAction:
			log.Debug("bot took no action", "bot", ev.BotID)
		case ipc.EventDamaged:
			if b, ok := f.bots[ev.BotID]; ok {
				b.HP -= ev.Damage
			}
			out = append(out, model.Damaged{BotID: ev.BotID, Damage: ev.Damage})
		case ipc.EventHit:
			out = append(out, model.Hit{BotID: ev.BotID, Source: ev.Source})
		case ipc.EventDetected:
			out = append(out, model.Detected{BotID: ev.BotID})
		case ipc.EventSee:
			if ev.Pos == nil {
				log.Warn("see event without position", "bot", ev.BotID)
				continue
			}
			out = append(out, model.Saw{BotID: ev.BotID, Source: ev.Source, Pos: *ev.Pos})
		case ipc.EventRadarEcho:
			if ev.Pos == nil {
				log.Warn("radar echo without position")
				continue
			}
			out = append(out, model.RadarEcho{BotID: ev.BotID, Pos: *ev.Pos})
		default:
			log.Warn("unknown event", "event", ev.Event, "bot", ev.BotID)
		}
	}
	return out
}
