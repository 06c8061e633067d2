package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"l1board/models"
)

type DiscordBotService struct {
	session   *discordgo.Session
	channelID string
	botID     string
	enabled   bool
}

func NewDiscordBotService(token string, channelID string) (*DiscordBotService, error) {
	if token == "" {
		log.Println("Discord bot token not provided, Discord notifications disabled")
		return &DiscordBotService{enabled: false}, nil
	}

	if channelID == "" {
		log.Println("Discord channel ID not provided, Discord notifications disabled")
		return &DiscordBotService{enabled: false}, nil
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	user, err := session.User("@me")
	if err != nil {
		return nil, fmt.Errorf("failed to get bot user: %w", err)
	}

	botService := &DiscordBotService{
		session:   session,
		channelID: channelID,
		botID:     user.ID,
		enabled:   true,
	}

	session.AddHandler(botService.messageHandler)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord connection: %w", err)
	}

	log.Printf("Discord bot connected successfully! Bot ID: %s, Channel: %s", user.ID, channelID)

	return botService, nil
}

func (d *DiscordBotService) Close() {
	if d.enabled && d.session != nil {
		log.Println("Closing Discord bot connection...")
		d.session.Close()
	}
}

// messageHandler answers simple channel commands
func (d *DiscordBotService) messageHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == d.botID {
		return
	}
	if m.ChannelID != d.channelID {
		return
	}

	if strings.HasPrefix(m.Content, "!l1") {
		args := strings.Fields(m.Content)
		if len(args) < 2 {
			return
		}

		switch args[1] {
		case "ping":
			s.ChannelMessageSend(m.ChannelID, "Pong! l1board alert bot is online.")
		case "help":
			helpMsg := "**l1board Bot Commands:**\n" +
				"`!l1 ping` - Check if bot is online\n" +
				"`!l1 help` - Show this help message\n" +
				"`!l1 status` - Where to find dashboard state"
			s.ChannelMessageSend(m.ChannelID, helpMsg)
		case "status":
			s.ChannelMessageSend(m.ChannelID, "Use the /api/chart and /api/nodes endpoints for current dashboard state.")
		default:
			s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Unknown command: `%s`. Try `!l1 help`", args[1]))
		}
	}
}

// SendAlert posts a fired rule to the alert channel.
func (d *DiscordBotService) SendAlert(rule *models.AlertRule, event *models.AlertEvent) error {
	if !d.enabled {
		return fmt.Errorf("Discord bot not enabled")
	}

	embed := d.alertEmbed("🚨 "+rule.Name, rule, event)

	_, err := d.session.ChannelMessageSendEmbed(d.channelID, embed)
	if err != nil {
		return fmt.Errorf("failed to send Discord message: %w", err)
	}

	log.Printf("Alert sent to Discord: %s", rule.Name)
	return nil
}

// SendTestAlert posts a synthetic firing so operators can verify their
// channel wiring.
func (d *DiscordBotService) SendTestAlert(rule *models.AlertRule, event *models.AlertEvent) error {
	if !d.enabled {
		return fmt.Errorf("Discord bot not enabled")
	}

	embed := d.alertEmbed("🧪 Test Alert: "+rule.Name, rule, event)
	embed.Description += "\n\n*This is a test alert. No actual alert condition was triggered.*"
	embed.Color = 3447003 // Blue for test

	_, err := d.session.ChannelMessageSendEmbed(d.channelID, embed)
	if err != nil {
		return fmt.Errorf("failed to send Discord test message: %w", err)
	}

	log.Printf("Test alert sent to Discord: %s", rule.Name)
	return nil
}

func (d *DiscordBotService) alertEmbed(title string, rule *models.AlertRule, event *models.AlertEvent) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: rule.Description,
		Color:       d.colorForRuleType(rule.RuleType),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Rule Type",
				Value:  d.formatRuleType(rule.RuleType),
				Inline: true,
			},
			{
				Name:   "Address",
				Value:  rule.Address,
				Inline: true,
			},
			{
				Name:   "Current Value",
				Value:  d.formatValue(rule.RuleType, event.Value),
				Inline: true,
			},
			{
				Name:   "Threshold",
				Value:  d.formatValue(rule.RuleType, rule.Threshold),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Rule ID: %s", rule.ID),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func (d *DiscordBotService) colorForRuleType(ruleType string) int {
	switch ruleType {
	case models.RuleDownNodes:
		return 15158332 // Red
	case models.RuleLowEarnings:
		return 15844367 // Gold
	default:
		return 3447003 // Blue
	}
}

func (d *DiscordBotService) formatRuleType(ruleType string) string {
	switch ruleType {
	case models.RuleDownNodes:
		return "Down Nodes"
	case models.RuleLowEarnings:
		return "Low Earnings"
	default:
		return ruleType
	}
}

func (d *DiscordBotService) formatValue(ruleType string, value float64) string {
	if ruleType == models.RuleLowEarnings {
		return fmt.Sprintf("%.4f FIL", value)
	}
	return fmt.Sprintf("%.0f", value)
}

// SendMessage sends a plain text message to the channel
func (d *DiscordBotService) SendMessage(message string) error {
	if !d.enabled {
		return fmt.Errorf("Discord bot not enabled")
	}

	_, err := d.session.ChannelMessageSend(d.channelID, message)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
