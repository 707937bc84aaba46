package alpha

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// "Session Name";"2026-02-19 4:54 h";"1:02 hr"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d+:\d+)\s+h";"(.+)"$`)

	// "1. Exercise Name · Equipment · 8 reps[· modifiers]"[;"warmup info"]
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)(?:\s+·\s+(\S.*?))?\s+·\s+(\d+)\s+reps(.*?)"(?:;"(.+)")?$`)

	// 1;115;8;1
	setDataRe = regexp.MustCompile(`^(\d+);(.+);(\d+);(.+)$`)

	// WU1 · 37,5 kg · 9 reps
	warmupRe = regexp.MustCompile(`WU(\d+)\s+·\s+(.+?)\s+kg\s+·\s+(\d+)\s+reps`)

	columnHeaderRe = regexp.MustCompile(`^#;KG;REPS;RIR$`)

	// 1:02 hr, 45 min
	hoursRe   = regexp.MustCompile(`^(\d+):(\d{2})\s*h`)
	minutesRe = regexp.MustCompile(`^(\d+)\s*min`)
)

// session is one workout block of the export.
type session struct {
	name      string
	start     time.Time
	duration  string
	exercises []exercise
}

type exercise struct {
	number     int
	name       string
	equipment  string
	targetReps int
	modifiers  string
	sets       []set
}

type set struct {
	number     int
	weightKg   float64
	bodyweight bool
	reps       int
	rir        float64
	warmup     bool
}

// scanner accumulates sessions line by line. Blank lines close a session.
type scanner struct {
	sessions []session
	current  *session
	exercise *exercise
}

func (s *scanner) closeExercise() {
	if s.current != nil && s.exercise != nil {
		s.current.exercises = append(s.current.exercises, *s.exercise)
	}
	s.exercise = nil
}

func (s *scanner) closeSession() {
	s.closeExercise()
	if s.current != nil {
		s.sessions = append(s.sessions, *s.current)
	}
	s.current = nil
}

func (s *scanner) line(line string) error {
	switch {
	case line == "":
		s.closeSession()

	case columnHeaderRe.MatchString(line):

	case sessionHeaderRe.MatchString(line):
		m := sessionHeaderRe.FindStringSubmatch(line)
		s.closeSession()
		start, err := parseSessionDate(m[2])
		if err != nil {
			return err
		}
		s.current = &session{name: m[1], start: start, duration: m[3]}

	case exerciseHeaderRe.MatchString(line):
		m := exerciseHeaderRe.FindStringSubmatch(line)
		if s.current == nil {
			return fmt.Errorf("exercise without session: %q", line)
		}
		s.closeExercise()
		num, _ := strconv.Atoi(m[1])
		target, _ := strconv.Atoi(m[4])
		s.exercise = &exercise{
			number:     num,
			name:       strings.TrimSpace(m[2]),
			equipment:  strings.TrimSpace(m[3]),
			targetReps: target,
			modifiers:  strings.Trim(strings.TrimSpace(m[5]), "· "),
		}
		if m[6] != "" {
			s.exercise.sets = append(s.exercise.sets, parseWarmups(m[6])...)
		}

	case setDataRe.MatchString(line):
		m := setDataRe.FindStringSubmatch(line)
		if s.exercise == nil {
			return fmt.Errorf("set data without exercise: %q", line)
		}
		num, _ := strconv.Atoi(m[1])
		weight, bw := parseWeight(m[2])
		reps, _ := strconv.Atoi(m[3])
		s.exercise.sets = append(s.exercise.sets, set{
			number:     num,
			weightKg:   weight,
			bodyweight: bw,
			reps:       reps,
			rir:        parseEuropeanFloat(m[4]),
		})
	}
	// Anything else is app metadata.
	return nil
}

// parseSessions reads the raw session blocks of an export.
func parseSessions(r io.Reader) ([]session, error) {
	sc := bufio.NewScanner(r)
	var s scanner
	for sc.Scan() {
		if err := s.line(strings.TrimSpace(sc.Text())); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	s.closeSession()
	return s.sessions, nil
}

// parseSessionDate accepts "2026-02-19 4:54" and "2026-02-19 16:54".
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing session date %q", s)
}

// parseDuration converts "1:02 hr" or "45 min" to seconds; unknown text is 0.
func parseDuration(s string) int64 {
	s = strings.TrimSpace(s)
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.ParseInt(m[1], 10, 64)
		mins, _ := strconv.ParseInt(m[2], 10, 64)
		return h*3600 + mins*60
	}
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		mins, _ := strconv.ParseInt(m[1], 10, 64)
		return mins * 60
	}
	return 0
}

// parseWarmups extracts warm-up sets from "WU1 · 37,5 kg · 9 reps<br>WU2 · ...".
func parseWarmups(s string) []set {
	var sets []set
	for _, part := range strings.Split(s, "<br>") {
		m := warmupRe.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		weight, bw := parseWeight(m[2])
		reps, _ := strconv.Atoi(m[3])
		sets = append(sets, set{number: num, weightKg: weight, bodyweight: bw, reps: reps, warmup: true})
	}
	return sets
}

// parseWeight handles "+35" (bodyweight plus 35) and "102,5".
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		return parseEuropeanFloat(rest), true
	}
	return parseEuropeanFloat(s), false
}

// parseEuropeanFloat reads a decimal-comma number; "0,5" is 0.5.
func parseEuropeanFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	return f
}
