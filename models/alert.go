package models

import "time"

// Alert rule types.
const (
	RuleDownNodes   = "down_nodes"   // fire when down-node count reaches the threshold
	RuleLowEarnings = "low_earnings" // fire when window earnings fall below the threshold
)

// AlertRule is a monitoring rule for one operator address. Rules are
// evaluated against every freshly committed metrics result for that address.
type AlertRule struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Address     string    `json:"address" bson:"address"`
	RuleType    string    `json:"rule_type" bson:"rule_type"`
	Threshold   float64   `json:"threshold" bson:"threshold"`
	Enabled     bool      `json:"enabled" bson:"enabled"`
	Cooldown    int       `json:"cooldown_minutes" bson:"cooldown_minutes"`
	LastFired   time.Time `json:"last_fired" bson:"last_fired"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// AlertEvent records one firing of a rule.
type AlertEvent struct {
	ID        string    `json:"id" bson:"_id"`
	RuleID    string    `json:"rule_id" bson:"rule_id"`
	RuleName  string    `json:"rule_name" bson:"rule_name"`
	Address   string    `json:"address" bson:"address"`
	Message   string    `json:"message" bson:"message"`
	Value     float64   `json:"value" bson:"value"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Notified  bool      `json:"notified" bson:"notified"`
	ErrorMsg  string    `json:"error_msg,omitempty" bson:"error_msg,omitempty"`
}
