package models

import (
	"transitscore.colosseumlihtc.org/internal/refdata"
)

// DatasetModel reports the load state of a single reference dataset.
type DatasetModel struct {
	Records  int      `json:"records"`
	Sources  []string `json:"sources,omitempty"`
	Failed   []string `json:"failed,omitempty"`
	LoadedAt int64    `json:"loadedAt"`
}

// DatasetStatusModel reports the load state of every reference dataset.
type DatasetStatusModel struct {
	Stops DatasetModel `json:"stops"`
	HQTA  DatasetModel `json:"hqta"`
	HQTS  DatasetModel `json:"hqts"`
}

// NewDatasetStatusModel converts manager stats into the status payload.
func NewDatasetStatusModel(stats refdata.Stats) DatasetStatusModel {
	return DatasetStatusModel{
		Stops: newDatasetModel(stats.Stops),
		HQTA:  newDatasetModel(stats.HQTA),
		HQTS:  newDatasetModel(stats.HQTS),
	}
}

func newDatasetModel(stats refdata.DatasetStats) DatasetModel {
	model := DatasetModel{
		Records: stats.Records,
		Sources: stats.Sources,
		Failed:  stats.Failed,
	}
	if !stats.LoadedAt.IsZero() {
		model.LoadedAt = stats.LoadedAt.UnixMilli()
	}
	return model
}
