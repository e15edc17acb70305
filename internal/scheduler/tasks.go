package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskItemEnrichment = "inventory.item.enrich"

type ItemEnrichmentPayload struct {
	ItemID string `json:"itemId"`
}

func NewItemEnrichmentTask(payload ItemEnrichmentPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskItemEnrichment, data), nil
}

func ParseItemEnrichmentPayload(task *asynq.Task) (ItemEnrichmentPayload, error) {
	var payload ItemEnrichmentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ItemEnrichmentPayload{}, err
	}
	return payload, nil
}
