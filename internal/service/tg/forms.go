package tg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dog_walking/internal/dto"
)

// WalkDateLayout - формат ввода и вывода даты прогулки.
const WalkDateLayout = "2006-01-02 15:04"

var errBadInput = errors.New("bad input")

func badInput(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errBadInput}, args...)...)
}

// command - одна строка в разделе: у "edit 4 Rex; beagle; 3"
// verb "edit" и args "4 Rex; beagle; 3".
type command struct {
	verb string
	args string
}

func parseCommand(text string) command {
	text = strings.TrimSpace(text)
	verb, args, _ := strings.Cut(text, " ")
	return command{verb: strings.ToLower(verb), args: strings.TrimSpace(args)}
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, badInput("%q is not a valid id", strings.TrimSpace(s))
	}
	return uint(id), nil
}

// splitIDArgs делит "4 остаток строки" на id и остаток.
func splitIDArgs(args string) (uint, string, error) {
	idPart, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	if idPart == "" {
		return 0, "", badInput("an id is required")
	}
	id, err := parseID(idPart)
	if err != nil {
		return 0, "", err
	}
	return id, strings.TrimSpace(rest), nil
}

// splitFields делит форму по ';' и обрезает пробелы в полях.
func splitFields(s string, want int) ([]string, error) {
	parts := strings.Split(s, ";")
	if len(parts) != want {
		return nil, badInput("expected %d fields separated by ';', got %d", want, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// parseClient читает "name; phone".
func parseClient(s string) (*dto.Client, error) {
	f, err := splitFields(s, 2)
	if err != nil {
		return nil, err
	}
	return &dto.Client{Name: f[0], Phone: f[1]}, nil
}

// parseDog читает "client_id; name; breed; age". Порода может быть пустой.
func parseDog(s string) (*dto.Dog, error) {
	f, err := splitFields(s, 4)
	if err != nil {
		return nil, err
	}
	clientID, err := parseID(f[0])
	if err != nil {
		return nil, err
	}
	age, err := strconv.Atoi(f[3])
	if err != nil {
		return nil, badInput("age %q is not a number", f[3])
	}
	return &dto.Dog{ClientID: clientID, Name: f[1], Breed: f[2], Age: age}, nil
}

// parseWalk читает "dog_id; YYYY-MM-DD HH:MM; minutes" в поясе loc.
func parseWalk(s string, loc *time.Location) (*dto.Walk, error) {
	f, err := splitFields(s, 3)
	if err != nil {
		return nil, err
	}
	dogID, err := parseID(f[0])
	if err != nil {
		return nil, err
	}
	when, err := time.ParseInLocation(WalkDateLayout, f[1], loc)
	if err != nil {
		return nil, badInput("date %q must look like %s", f[1], WalkDateLayout)
	}
	minutes, err := strconv.Atoi(f[2])
	if err != nil {
		return nil, badInput("duration %q is not a number", f[2])
	}
	return &dto.Walk{DogID: dogID, WalkDate: when, DurationMinutes: minutes}, nil
}

func formatClient(c dto.Client) string {
	return fmt.Sprintf("#%d %s, %s", c.ID, c.Name, c.Phone)
}

func formatDog(d dto.Dog) string {
	breed := d.Breed
	if breed == "" {
		breed = "mixed"
	}
	return fmt.Sprintf("#%d %s (%s, %d y.o.), owner #%d %s", d.ID, d.Name, breed, d.Age, d.ClientID, d.ClientName)
}

func formatWalk(w dto.Walk, loc *time.Location) string {
	return fmt.Sprintf("#%d %s, %d min, dog #%d %s (%s)",
		w.ID, w.WalkDate.In(loc).Format(WalkDateLayout), w.DurationMinutes, w.DogID, w.DogName, w.ClientName)
}

// maxListLines держит ответ в пределах лимита длины сообщения Telegram.
const maxListLines = 50

func formatList(title string, lines []string) string {
	if len(lines) == 0 {
		return title + ": nothing found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d):\n", title, len(lines))
	for i, line := range lines {
		if i == maxListLines {
			fmt.Fprintf(&b, "... and %d more, use find to narrow down", len(lines)-maxListLines)
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func mapLines[T any](rows []T, f func(T) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, f(r))
	}
	return out
}
