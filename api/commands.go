package api

import (
	"errors"

	"github.com/bytedance/sonic"

	"slate-api/domain"
	"slate-api/store"
)

// applyCommand executes a single finalized command against the board and
// reports its outcome. NotFound failures surface per command; deletes are
// idempotent and always report applied.
func applyCommand(board Board, cmd domain.Command) commandResult {
	switch cmd.EntityType {
	case domain.EntitySection:
		return applySectionCommand(board, cmd)
	case domain.EntityTask:
		return applyTaskCommand(board, cmd)
	default:
		return invalidResult(cmd, "unknown entity type")
	}
}

func applySectionCommand(board Board, cmd domain.Command) commandResult {
	switch cmd.Type {
	case domain.CommandCreate:
		var data domain.SectionData
		if err := sonic.Unmarshal(cmd.Data, &data); err != nil {
			return invalidResult(cmd, "invalid section payload")
		}
		board.AddSection(data.Title)
		return appliedResult(cmd)

	case domain.CommandUpdate:
		var data domain.SectionData
		if err := sonic.Unmarshal(cmd.Data, &data); err != nil {
			return invalidResult(cmd, "invalid section payload")
		}
		return resultFromErr(cmd, board.RenameSection(cmd.EntityID, data.Title))

	case domain.CommandDelete:
		board.DeleteSection(cmd.EntityID)
		return appliedResult(cmd)

	default:
		return invalidResult(cmd, "unknown section command")
	}
}

func applyTaskCommand(board Board, cmd domain.Command) commandResult {
	switch cmd.Type {
	case domain.CommandCreate:
		in, err := decodeTaskInput(cmd.Data)
		if err != nil {
			return invalidResult(cmd, "invalid task payload")
		}
		board.AddTask(in)
		return appliedResult(cmd)

	case domain.CommandUpdate:
		in, err := decodeTaskInput(cmd.Data)
		if err != nil {
			return invalidResult(cmd, "invalid task payload")
		}
		return resultFromErr(cmd, board.UpdateTask(cmd.EntityID, in))

	case domain.CommandToggle:
		return resultFromErr(cmd, board.ToggleTask(cmd.EntityID))

	case domain.CommandDelete:
		board.DeleteTask(cmd.EntityID)
		return appliedResult(cmd)

	default:
		return invalidResult(cmd, "unknown task command")
	}
}

func decodeTaskInput(raw sonic.NoCopyRawMessage) (store.TaskInput, error) {
	var data domain.TaskData
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return store.TaskInput{}, err
	}
	return store.TaskInput{
		Title:       data.Title,
		Description: data.Description,
		Priority:    domain.NormalizePriority(data.Priority),
		SectionID:   data.SectionID,
		Reminder:    data.Reminder,
	}, nil
}

func appliedResult(cmd domain.Command) commandResult {
	return commandResult{ID: cmd.ID, Status: statusApplied}
}

func invalidResult(cmd domain.Command, msg string) commandResult {
	return commandResult{ID: cmd.ID, Status: statusInvalid, Error: msg}
}

func resultFromErr(cmd domain.Command, err error) commandResult {
	if errors.Is(err, store.ErrNotFound) {
		return commandResult{ID: cmd.ID, Status: statusNotFound, Error: err.Error()}
	}
	if err != nil {
		return invalidResult(cmd, err.Error())
	}
	return appliedResult(cmd)
}
