package email

import (
	"fmt"
	"strings"
	"taskflow/internal/core/domain/meeting"
	"taskflow/internal/core/domain/task"
	"time"

	"github.com/golang-module/carbon/v2"
)

func reminderSubject(t task.Task) string {
	return fmt.Sprintf("Reminder: Task %q starts in 30 minutes", t.Title)
}

func reminderBody(t task.Task) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Your task %q starts at %s.\n", t.Title, formatTime(t.StartAt.Value))
	if t.Description != "" {
		fmt.Fprintf(b, "\n%s\n", t.Description)
	}
	return b.String()
}

func invitationSubject(m meeting.Meeting) string {
	return fmt.Sprintf("Invitation: %s", m.Title)
}

func invitationBody(m meeting.Meeting) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "You are invited to %q.\n", m.Title)
	fmt.Fprintf(b, "\nWhen: %s - %s\n", formatTime(m.StartAt), formatTime(m.EndAt))
	if m.MeetingType == meeting.TypeOnline {
		fmt.Fprintf(b, "Where: online\n")
	} else {
		fmt.Fprintf(b, "Where: %s\n", m.Location)
	}
	if m.Description != "" {
		fmt.Fprintf(b, "\n%s\n", m.Description)
	}
	return b.String()
}

func formatTime(t time.Time) string {
	return carbon.Time2Carbon(t.UTC()).ToDayDateTimeString() + " UTC"
}
