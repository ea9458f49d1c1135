package ecs

// UpdateFrame is handed to every system during one scheduler pass
type UpdateFrame struct {
	DeltaTime float64
	// Tick counts scheduler passes, starting at 1
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, tick uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
