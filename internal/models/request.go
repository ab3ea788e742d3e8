package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/bloodtype"
	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
)

// Status is the lifecycle state of a BloodRequest. Only StatusActive is
// ever produced.
type Status string

const StatusActive Status = "active"

// BloodRequest is an SOS raised by a user. Contact, location and address
// fields are a snapshot of the requester taken at creation time.
type BloodRequest struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	RequesterName  string         `json:"requesterName"`
	RequesterPhone string         `json:"requesterPhone"`
	BloodNeeded    bloodtype.Type `json:"bloodNeeded"`
	Location       geo.Location   `json:"location"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	Pincode        string         `json:"pincode"`
	Status         Status         `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	AcceptedBy     []Acceptance   `json:"acceptedBy"`
}

// Acceptance records a donor answering a request. It is append-only.
type Acceptance struct {
	DonorID        string         `json:"donorId"`
	DonorName      string         `json:"donorName"`
	DonorPhone     string         `json:"donorPhone"`
	DonorBloodType bloodtype.Type `json:"donorBloodType"`
	AcceptedAt     time.Time      `json:"acceptedAt"`
}

// NearbyRequest is a request annotated with its distance from the viewer,
// rounded to one decimal place.
type NearbyRequest struct {
	BloodRequest
	Distance float64 `json:"distance"`
}

func (r BloodRequest) IsActive() bool {
	return r.Status == StatusActive
}

func (r BloodRequest) String() string {
	return fmt.Sprintf("%s  %-3s  %s  %s  accepted:%d",
		r.ID, r.BloodNeeded, r.RequesterName, r.CreatedAt.Format(time.DateTime), len(r.AcceptedBy))
}

func (n NearbyRequest) String() string {
	return fmt.Sprintf("%s  %-3s  %s  %.1f km  %s",
		n.ID, n.BloodNeeded, n.RequesterName, n.Distance, n.City)
}
