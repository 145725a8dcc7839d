package health

import (
	"log/slog"

	"activity-signup/internal/global/logger"
)

var log *slog.Logger

type ModuleHealth struct{}

func (p *ModuleHealth) GetName() string {
	return "Health"
}

func (p *ModuleHealth) Init() {
	log = logger.New("Health")
}
