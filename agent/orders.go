package agent

import (
	"github.com/nstehr/serenity/serenity-core/hex"
	"github.com/nstehr/serenity/serenity-core/ipc"
	"github.com/nstehr/serenity/serenity-core/model"
)

// orders collects the capability calls of one round into wire actions.
type orders struct {
	actions []ipc.Action
}

// bind returns the capabilities of one bot, recording into o.
func (o *orders) bind(botID int) model.Capabilities {
	return botOrders{o: o, id: botID}
}

type botOrders struct {
	o  *orders
	id int
}

func (b botOrders) Move(x, y int)   { b.add(model.ActionMove, x, y) }
func (b botOrders) Radar(x, y int)  { b.add(model.ActionRadar, x, y) }
func (b botOrders) Cannon(x, y int) { b.add(model.ActionCannon, x, y) }

func (b botOrders) add(a model.Action, x, y int) {
	b.o.actions = append(b.o.actions, ipc.Action{BotID: b.id, Type: string(a), Pos: hex.New(x, y)})
}
