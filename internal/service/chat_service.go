package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"thryveiq/coaching-app/internal/domain"
	"thryveiq/coaching-app/internal/llm"
	"thryveiq/coaching-app/internal/repository"
)

const chatSystemPrompt = `You are ThryveIQ, an expert triathlon coach AI. You have access to tools to look up
the athlete's real training data. Always use a tool when the user asks about their
workouts, plan, zones, or profile - never guess or make up numbers.

When you need data, respond with ONLY a JSON object: {"tool": "tool_name"}
When you don't need a tool, respond with your coaching advice directly.

Available tools:
- get_current_plan: the athlete's current training plan, week by week
- get_athlete_zones: the athlete's heart rate, power, and pace zones
- get_athlete_profile: the athlete's goal, race date, and guide rails

Be concise, friendly, and encouraging. Use specific numbers and details from tool results.
Never fabricate stats or training data.`

// Canned coaching replies keyed on message keywords. Used directly when the
// LLM is unreachable so the chat endpoint always answers.
var stockResponses = map[string]string{
	"swim":      "For swimming, focus on your stroke technique before building distance. Try drills like catch-up and fingertip drag to improve efficiency.",
	"bike":      "On the bike, consistency is key. Aim for a steady cadence of 85-95 RPM and build your base endurance before adding intensity.",
	"run":       "Running off the bike takes practice. Start with short brick sessions - even 10 minutes of running after a ride helps your legs adapt.",
	"nutrition": "Nutrition is your fourth discipline. Practice your race-day fueling during training so there are no surprises.",
	"recovery":  "Recovery is when your body actually gets stronger. Prioritize sleep, hydration, and easy days between hard sessions.",
	"race":      "Race day tip: start conservative. It's much better to finish strong than to blow up halfway through.",
	"training":  "A solid training plan balances swim, bike, and run with strength work and rest days. What distance are you training for?",
}

const stockDefaultResponse = "That's a great question! As your AI coach, I can help with swim, bike, run training, nutrition, recovery, and race strategy. What area would you like to focus on?"

// maxToolRounds bounds the tool-call loop per message.
const maxToolRounds = 3

// ChatService answers athlete questions, grounding LLM replies in stored
// training data via a small tool set.
type ChatService interface {
	Message(ctx context.Context, userID primitive.ObjectID, message string, history []llm.Message) (reply string, toolsUsed []string, err error)
}

// Chatter is the conversational collaborator; *llm.Client satisfies it.
type Chatter interface {
	Chat(ctx context.Context, messages []llm.Message, system string) (string, error)
}

// --- Service Implementation ---

type chatService struct {
	profileRepo repository.ProfileRepository
	planRepo    repository.PlanRepository
	chatter     Chatter // nil when the LLM is disabled
}

// NewChatService creates a new instance of chatService. chatter may be nil,
// in which case every message gets a keyword stock response.
func NewChatService(profileRepo repository.ProfileRepository, planRepo repository.PlanRepository, chatter Chatter) ChatService {
	return &chatService{
		profileRepo: profileRepo,
		planRepo:    planRepo,
		chatter:     chatter,
	}
}

// Message runs one chat turn. The LLM may request tools for up to three
// rounds; when it is unreachable the keyword router answers instead.
func (s *chatService) Message(ctx context.Context, userID primitive.ObjectID, message string, history []llm.Message) (string, []string, error) {
	toolsUsed := []string{}

	if s.chatter == nil {
		return s.keywordReply(message), toolsUsed, nil
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: message})

	response, err := s.chatter.Chat(ctx, messages, chatSystemPrompt)
	if err != nil {
		log.Printf("Chat LLM unavailable (%v), using keyword responses", err)
		return s.keywordReply(message), toolsUsed, nil
	}

	for round := 0; round < maxToolRounds; round++ {
		toolName, ok := parseToolCall(response)
		if !ok {
			break
		}
		result, err := s.runTool(ctx, toolName, userID)
		if err != nil {
			break
		}
		toolsUsed = append(toolsUsed, toolName)

		messages = append(messages,
			llm.Message{Role: "assistant", Content: response},
			llm.Message{Role: "user", Content: fmt.Sprintf(
				"[Tool result from %s]:\n%s\n\nNow answer the user's question using this data.", toolName, result)},
		)

		response, err = s.chatter.Chat(ctx, messages, chatSystemPrompt)
		if err != nil {
			log.Printf("Chat LLM unavailable mid-conversation (%v), using keyword responses", err)
			return s.keywordReply(message), toolsUsed, nil
		}
	}

	return response, toolsUsed, nil
}

// keywordReply picks a canned answer based on the first matching keyword.
func (s *chatService) keywordReply(message string) string {
	text := strings.ToLower(message)

	// Sorted keys keep the fallback deterministic when several keywords match.
	keywords := make([]string, 0, len(stockResponses))
	for k := range stockResponses {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return stockResponses[keyword]
		}
	}
	return stockDefaultResponse
}

// parseToolCall extracts a {"tool": "..."} request from the model response,
// tolerating JSON embedded in surrounding prose.
func parseToolCall(text string) (string, bool) {
	text = strings.TrimSpace(text)

	var call struct {
		Tool string `json:"tool"`
	}
	if err := json.Unmarshal([]byte(text), &call); err == nil && call.Tool != "" {
		return call.Tool, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &call); err == nil && call.Tool != "" {
		return call.Tool, true
	}
	return "", false
}

// runTool executes a named tool against the athlete's stored data.
func (s *chatService) runTool(ctx context.Context, name string, userID primitive.ObjectID) (string, error) {
	switch name {
	case "get_current_plan":
		return s.toolCurrentPlan(ctx, userID)
	case "get_athlete_zones":
		return s.toolAthleteZones(ctx, userID)
	case "get_athlete_profile":
		return s.toolAthleteProfile(ctx, userID)
	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

// toolCurrentPlan summarizes the stored plan, first four weeks in detail.
func (s *chatService) toolCurrentPlan(ctx context.Context, userID primitive.ObjectID) (string, error) {
	plan, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "No training plan found. The athlete hasn't generated a plan yet.", nil
		}
		return "", err
	}

	byWeek := map[int][]domain.Session{}
	weeks := []int{}
	for _, session := range plan.Sessions {
		if _, seen := byWeek[session.Week]; !seen {
			weeks = append(weeks, session.Week)
		}
		byWeek[session.Week] = append(byWeek[session.Week], session)
	}
	sort.Ints(weeks)

	var b strings.Builder
	fmt.Fprintf(&b, "Plan has %d weeks, %d total sessions.\n\n", len(weeks), len(plan.Sessions))
	for i, week := range weeks {
		if i == 4 {
			fmt.Fprintf(&b, "... and %d more weeks.\n", len(weeks)-4)
			break
		}
		fmt.Fprintf(&b, "Week %d:\n", week)
		for _, s := range byWeek[week] {
			fmt.Fprintf(&b, "  %s: %s - %dmin Z%d (%s)\n", s.Day, s.Sport, s.DurationMinutes, s.Zone, s.ZoneLabel)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// toolAthleteZones returns the stored zone tables as JSON.
func (s *chatService) toolAthleteZones(ctx context.Context, userID primitive.ObjectID) (string, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "No athlete profile found.", nil
		}
		return "", err
	}
	if profile.Zones == nil {
		return "No training zones have been calculated yet for this athlete.", nil
	}

	zones, err := json.MarshalIndent(profile.Zones, "", "  ")
	if err != nil {
		return "", err
	}
	return string(zones), nil
}

// toolAthleteProfile formats the athlete's guide rails.
func (s *chatService) toolAthleteProfile(ctx context.Context, userID primitive.ObjectID) (string, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "No athlete profile found.", nil
		}
		return "", err
	}

	return fmt.Sprintf(
		"Goal: %s\nExperience: %s\nRace date: %s\nWeekly hours: %.1f\nDays available: %d\nStrongest discipline: %s\nWeakest discipline: %s\nBackground: %s",
		profile.Goal,
		profile.Experience,
		profile.RaceDate.Format("2006-01-02"),
		profile.WeeklyHours,
		profile.DaysAvailable,
		profile.StrongestDiscipline,
		profile.WeakestDiscipline,
		profile.CurrentBackground,
	), nil
}
