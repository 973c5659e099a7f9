package models

// ServiceNode is one node in an organization's tree of offerable services.
// Leaf nodes carry the scheduling policy; group nodes just hold children.
type ServiceNode struct {
	ID                string        `bson:"id" json:"id"`
	Name              string        `bson:"name" json:"name"`
	Description       string        `bson:"description,omitempty" json:"description,omitempty"`
	Duration          int           `bson:"duration" json:"duration"` // minutes
	Price             float64       `bson:"price" json:"price"`
	Interval          int           `bson:"interval,omitempty" json:"interval,omitempty"`         // slot granularity, minutes
	BufferTime        int           `bson:"buffer_time,omitempty" json:"bufferTime,omitempty"`    // idle gap before/after, minutes
	MinimumNotice     int           `bson:"minimum_notice,omitempty" json:"minimumNotice,omitempty"` // lead time, minutes
	AssignedEmployees []string      `bson:"assigned_employees,omitempty" json:"assignedEmployees,omitempty"` // external employee ids
	DefaultEmployeeID string        `bson:"default_employee_id,omitempty" json:"defaultEmployeeId,omitempty"`
	Children          []ServiceNode `bson:"children,omitempty" json:"children,omitempty"`
}

// SchedulingPolicy bundles the per-service parameters the availability
// evaluator needs for one slot check.
type SchedulingPolicy struct {
	Duration      int `json:"duration"`
	Interval      int `json:"interval"`
	BufferTime    int `json:"bufferTime"`
	MinimumNotice int `json:"minimumNotice"`
}

// Policy extracts the scheduling policy from a service node.
func (n *ServiceNode) Policy() SchedulingPolicy {
	return SchedulingPolicy{
		Duration:      n.Duration,
		Interval:      n.Interval,
		BufferTime:    n.BufferTime,
		MinimumNotice: n.MinimumNotice,
	}
}
