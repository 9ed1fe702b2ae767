package services

import (
	"errors"

	"hacktrack/internal/models"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// TaskTransitions lists the board moves a task can make. A task can move to
// any other column; moving onto its own column is rejected.
var TaskTransitions = map[models.TaskStatus]map[models.TaskStatus]bool{
	models.StatusTodo:  {models.StatusDoing: true, models.StatusDone: true},
	models.StatusDoing: {models.StatusTodo: true, models.StatusDone: true},
	models.StatusDone:  {models.StatusTodo: true, models.StatusDoing: true},
}

func canTransition(current, to models.TaskStatus) bool {
	if current == "" {
		// legacy rows without a status may move anywhere
		return true
	}
	nexts, ok := TaskTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}
