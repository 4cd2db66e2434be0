package formatter

import (
	"strings"
	"testing"

	"github.com/wilkerbruno/videos-automacoes/internal/models"
)

func TestAbbreviate(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1500, "1.5K"},
		{999999, "1000K"},
		{1000000, "1M"},
		{2500000, "2.5M"},
		{-1500, "-1.5K"},
	}

	for _, c := range cases {
		if got := Abbreviate(c.in); got != c.want {
			t.Errorf("Abbreviate(%d) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestHashtags(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		if got := Hashtags(nil); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("Prefix Added When Missing", func(t *testing.T) {
		got := Hashtags([]string{"#viral", "fyp"})
		if got != "#viral #fyp" {
			t.Errorf("expected '#viral #fyp', got %q", got)
		}
	})
}

func TestScheduleTime(t *testing.T) {
	t.Run("Parseable Timestamp", func(t *testing.T) {
		p := models.ScheduledPost{ScheduleTime: "2026-09-01T10:00:00"}
		got := ScheduleTime(p)
		if !strings.Contains(got, "Sep 1 2026") {
			t.Errorf("expected formatted date, got %q", got)
		}
	})

	t.Run("Unparseable Falls Back To Raw", func(t *testing.T) {
		p := models.ScheduledPost{ScheduleTime: "soonish"}
		if got := ScheduleTime(p); got != "soonish" {
			t.Errorf("expected raw fallback, got %q", got)
		}
	})
}

func TestPlatforms(t *testing.T) {
	got := Platforms([]string{"youtube", "tiktok", "somethingelse"})
	if got != "YouTube, TikTok, somethingelse" {
		t.Errorf("expected display names, got %q", got)
	}
}

func TestBar(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		got := Bar(10, 10, 4)
		if got != "████" {
			t.Errorf("expected full bar, got %q", got)
		}
	})

	t.Run("Half", func(t *testing.T) {
		got := Bar(5, 10, 4)
		if got != "██░░" {
			t.Errorf("expected half bar, got %q", got)
		}
	})

	t.Run("Zero Max", func(t *testing.T) {
		got := Bar(5, 0, 4)
		if got != "░░░░" {
			t.Errorf("expected empty bar, got %q", got)
		}
	})

	t.Run("Zero Width", func(t *testing.T) {
		if got := Bar(5, 10, 0); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestScore(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{85, "85/100 (high)"},
		{60, "60/100 (medium)"},
		{30, "30/100 (low)"},
	}

	for _, c := range cases {
		if got := Score(c.in); got != c.want {
			t.Errorf("Score(%d) = %s, want %s", c.in, got, c.want)
		}
	}
}
