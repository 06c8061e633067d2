package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"l1board/models"
)

// AlertService owns alert rules and evaluates them against every freshly
// committed metrics result (it plugs into chart sessions as their
// CommitObserver). Rules live in memory and are mirrored to MongoDB so they
// survive restarts.
type AlertService struct {
	rules      map[string]*models.AlertRule
	history    []*models.AlertEvent
	rulesMutex sync.RWMutex
	mongo      *MongoDBService
	discordBot *DiscordBotService
}

const historyKeep = 500

func NewAlertService(mongo *MongoDBService, discordBot *DiscordBotService) *AlertService {
	return &AlertService{
		rules:      make(map[string]*models.AlertRule),
		history:    make([]*models.AlertEvent, 0),
		mongo:      mongo,
		discordBot: discordBot,
	}
}

// LoadRulesFromDB restores persisted rules into memory.
func (as *AlertService) LoadRulesFromDB() error {
	if !as.mongo.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rules, err := as.mongo.ListAlertRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to load alert rules: %w", err)
	}

	as.rulesMutex.Lock()
	for _, r := range rules {
		as.rules[r.ID] = r
	}
	as.rulesMutex.Unlock()

	log.Printf("Loaded %d alert rules from MongoDB", len(rules))
	return nil
}

// CreateRule adds a new rule
func (as *AlertService) CreateRule(rule *models.AlertRule) error {
	if rule.RuleType != models.RuleDownNodes && rule.RuleType != models.RuleLowEarnings {
		return fmt.Errorf("unknown rule type: %s", rule.RuleType)
	}
	if rule.Address == "" {
		return fmt.Errorf("rule address is required")
	}
	if rule.ID == "" {
		rule.ID = fmt.Sprintf("rule_%d", time.Now().UnixNano())
	}
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	as.rulesMutex.Lock()
	as.rules[rule.ID] = rule
	as.rulesMutex.Unlock()

	if as.mongo.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := as.mongo.InsertAlertRule(ctx, rule); err != nil {
			log.Printf("Failed to persist alert rule to MongoDB: %v", err)
		}
	}

	return nil
}

// GetRule retrieves a specific rule
func (as *AlertService) GetRule(id string) (*models.AlertRule, bool) {
	as.rulesMutex.RLock()
	defer as.rulesMutex.RUnlock()
	rule, exists := as.rules[id]
	return rule, exists
}

// ListRules returns all rules
func (as *AlertService) ListRules() []*models.AlertRule {
	as.rulesMutex.RLock()
	defer as.rulesMutex.RUnlock()

	rules := make([]*models.AlertRule, 0, len(as.rules))
	for _, r := range as.rules {
		rules = append(rules, r)
	}
	return rules
}

// UpdateRule modifies an existing rule
func (as *AlertService) UpdateRule(id string, updated *models.AlertRule) error {
	as.rulesMutex.Lock()
	defer as.rulesMutex.Unlock()

	if _, exists := as.rules[id]; !exists {
		return fmt.Errorf("alert rule not found")
	}

	updated.ID = id
	updated.UpdatedAt = time.Now()
	as.rules[id] = updated

	if as.mongo.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := as.mongo.UpdateAlertRule(ctx, updated); err != nil {
			log.Printf("Failed to update alert rule in MongoDB: %v", err)
		}
	}

	return nil
}

// DeleteRule removes a rule
func (as *AlertService) DeleteRule(id string) error {
	as.rulesMutex.Lock()
	defer as.rulesMutex.Unlock()

	if _, exists := as.rules[id]; !exists {
		return fmt.Errorf("alert rule not found")
	}

	delete(as.rules, id)

	if as.mongo.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := as.mongo.DeleteAlertRule(ctx, id); err != nil {
			log.Printf("Failed to delete alert rule from MongoDB: %v", err)
		}
	}

	return nil
}

// History returns the most recent fired events, newest first.
func (as *AlertService) History(limit int) []*models.AlertEvent {
	as.rulesMutex.RLock()
	defer as.rulesMutex.RUnlock()

	if limit <= 0 || limit > len(as.history) {
		limit = len(as.history)
	}

	out := make([]*models.AlertEvent, limit)
	for i := 0; i < limit; i++ {
		out[i] = as.history[len(as.history)-1-i]
	}
	return out
}

// MetricsCommitted implements CommitObserver. Runs on the fetch goroutine
// after each successful commit, so evaluation never blocks the HTTP path.
func (as *AlertService) MetricsCommitted(address string, result *models.MetricsResult) {
	as.rulesMutex.Lock()
	defer as.rulesMutex.Unlock()

	now := time.Now()

	for _, rule := range as.rules {
		if !rule.Enabled || rule.Address != address {
			continue
		}

		cooldown := time.Duration(rule.Cooldown) * time.Minute
		if cooldown > 0 && now.Sub(rule.LastFired) < cooldown {
			continue
		}

		value, triggered := evaluateRule(rule, result)
		if !triggered {
			continue
		}

		rule.LastFired = now
		as.fireLocked(rule, value, now)
	}
}

// evaluateRule checks a single rule against a metrics result.
func evaluateRule(rule *models.AlertRule, result *models.MetricsResult) (float64, bool) {
	switch rule.RuleType {
	case models.RuleDownNodes:
		down := float64(result.Nodes.Down)
		return down, down >= rule.Threshold
	case models.RuleLowEarnings:
		var total float64
		for _, e := range result.Earnings {
			total += e.FilAmount
		}
		return total, total < rule.Threshold
	}
	return 0, false
}

// fireLocked records and notifies one firing. Caller holds rulesMutex.
func (as *AlertService) fireLocked(rule *models.AlertRule, value float64, now time.Time) {
	event := &models.AlertEvent{
		ID:        fmt.Sprintf("event_%d", now.UnixNano()),
		RuleID:    rule.ID,
		RuleName:  rule.Name,
		Address:   rule.Address,
		Message:   fmt.Sprintf("%s triggered for %s (value %.4f, threshold %.4f)", rule.RuleType, rule.Address, value, rule.Threshold),
		Value:     value,
		Timestamp: now,
	}

	if as.discordBot != nil {
		if err := as.discordBot.SendAlert(rule, event); err != nil {
			event.ErrorMsg = err.Error()
			log.Printf("Failed to send alert %s to Discord: %v", rule.ID, err)
		} else {
			event.Notified = true
		}
	}

	as.history = append(as.history, event)
	if len(as.history) > historyKeep {
		as.history = as.history[len(as.history)-historyKeep:]
	}

	if as.mongo.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := as.mongo.InsertAlertEvent(ctx, event); err != nil {
			log.Printf("Failed to persist alert event to MongoDB: %v", err)
		}
	}

	log.Printf("Alert fired: %s (%s)", rule.Name, event.Message)
}

// TestRule fires a synthetic event for a rule without touching its cooldown.
func (as *AlertService) TestRule(id string) error {
	rule, found := as.GetRule(id)
	if !found {
		return fmt.Errorf("alert rule not found")
	}

	if as.discordBot == nil {
		return fmt.Errorf("no notifier configured")
	}

	event := &models.AlertEvent{
		ID:        fmt.Sprintf("event_%d", time.Now().UnixNano()),
		RuleID:    rule.ID,
		RuleName:  rule.Name,
		Address:   rule.Address,
		Message:   "test firing",
		Value:     rule.Threshold,
		Timestamp: time.Now(),
	}
	return as.discordBot.SendTestAlert(rule, event)
}
