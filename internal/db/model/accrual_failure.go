package model

import "time"

type AccrualFailureDocument struct {
	PositionID string    `bson:"_id"`
	Day        string    `bson:"day"`
	Error      string    `bson:"error"`
	Attempts   int32     `bson:"attempts"`
	UpdatedAt  time.Time `bson:"updated_at"`
}
