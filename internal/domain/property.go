package domain

import "time"

type Building struct {
	ID        int32     `json:"id"`
	OrgID     int32     `json:"org_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

type Unit struct {
	ID         int32     `json:"id"`
	OrgID      int32     `json:"org_id"`
	BuildingID int32     `json:"building_id"`
	Label      string    `json:"label"`
	Floor      string    `json:"floor"`
	Notes      string    `json:"notes"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}
