// Package importer decodes the XML bulk upload documents for activities and
// rooms and applies the decoded records with bounded concurrency.
package importer

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"

	"golang.org/x/sync/errgroup"
)

type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
)

var ErrInvalidOperation = apperrors.Validation("XML Contains invalid operation element value")

// ParseError covers malformed XML as well as documents missing required elements.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(format string, args ...any) error {
	return &ParseError{Err: fmt.Errorf(format, args...)}
}

// ApplyError is returned when at least one record failed to persist.
type ApplyError struct {
	Failed int
	Total  int
	Err    error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("%d of %d records failed: %v", e.Failed, e.Total, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

type activityUpload struct {
	XMLName    xml.Name      `xml:"activity-upload"`
	Operation  string        `xml:"operation,attr"`
	Activities *activityList `xml:"activities"`
}

type activityList struct {
	Items []activityElement `xml:"activity"`
}

type activityElement struct {
	ID          *string `xml:"activity_id"`
	Name        *string `xml:"activity_name"`
	Description *string `xml:"activity_description"`
	Duration    *string `xml:"activity_duration"`
}

type roomUpload struct {
	XMLName   xml.Name  `xml:"room-upload"`
	Operation string    `xml:"operation,attr"`
	Rooms     *roomList `xml:"rooms"`
}

type roomList struct {
	Items []roomElement `xml:"room"`
}

type roomElement struct {
	ID       *string `xml:"room_id"`
	Location *string `xml:"room_location"`
	Number   *string `xml:"room_number"`
}

func parseOperation(s string) (Operation, error) {
	switch op := Operation(strings.TrimSpace(s)); op {
	case OpInsert, OpUpdate:
		return op, nil
	default:
		return "", ErrInvalidOperation
	}
}

// DecodeActivities reads an <activity-upload> document. The directive is
// checked before any record is mapped.
func DecodeActivities(r io.Reader) (Operation, []models.Activity, error) {
	var doc activityUpload
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return "", nil, &ParseError{Err: err}
	}

	op, err := parseOperation(doc.Operation)
	if err != nil {
		return "", nil, err
	}
	if doc.Activities == nil {
		return "", nil, parseErrorf("missing <activities> element")
	}

	activities := make([]models.Activity, 0, len(doc.Activities.Items))
	for i, el := range doc.Activities.Items {
		a, err := el.toModel(op)
		if err != nil {
			return "", nil, parseErrorf("activity %d: %v", i+1, err)
		}
		activities = append(activities, a)
	}
	return op, activities, nil
}

func (el activityElement) toModel(op Operation) (models.Activity, error) {
	var a models.Activity
	var err error

	if op == OpUpdate {
		if a.ID, err = requiredInt("activity_id", el.ID); err != nil {
			return a, err
		}
	}
	if a.Name, err = required("activity_name", el.Name); err != nil {
		return a, err
	}
	if a.Description, err = required("activity_description", el.Description); err != nil {
		return a, err
	}
	if a.Duration, err = requiredInt("activity_duration", el.Duration); err != nil {
		return a, err
	}
	return a, nil
}

var digits = regexp.MustCompile(`^[0-9]+$`)

// DecodeRooms reads a <room-upload> document.
func DecodeRooms(r io.Reader) (Operation, []models.Room, error) {
	var doc roomUpload
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return "", nil, &ParseError{Err: err}
	}

	op, err := parseOperation(doc.Operation)
	if err != nil {
		return "", nil, err
	}
	if doc.Rooms == nil {
		return "", nil, parseErrorf("missing <rooms> element")
	}

	rooms := make([]models.Room, 0, len(doc.Rooms.Items))
	for i, el := range doc.Rooms.Items {
		room, err := el.toModel(op)
		if err != nil {
			return "", nil, parseErrorf("room %d: %v", i+1, err)
		}
		rooms = append(rooms, room)
	}
	return op, rooms, nil
}

func (el roomElement) toModel(op Operation) (models.Room, error) {
	var room models.Room
	var err error

	if op == OpUpdate {
		if room.ID, err = requiredInt("room_id", el.ID); err != nil {
			return room, err
		}
	}
	if room.Location, err = required("room_location", el.Location); err != nil {
		return room, err
	}
	if room.Number, err = required("room_number", el.Number); err != nil {
		return room, err
	}
	if !digits.MatchString(room.Number) {
		return room, fmt.Errorf("room_number must contain digits only")
	}
	return room, nil
}

func required(name string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", fmt.Errorf("missing <%s>", name)
	}
	return strings.TrimSpace(*v), nil
}

func requiredInt(name string, v *string) (int64, error) {
	s, err := required(name, v)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("<%s> is not an integer: %q", name, s)
	}
	return n, nil
}

// Apply runs fn for every record, at most limit at a time. Every record is
// attempted even after a failure; the first failure is reported.
func Apply[T any](ctx context.Context, records []T, limit int, fn func(context.Context, T) error) (int, error) {
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	var failed atomic.Int64
	for _, rec := range records {
		g.Go(func() error {
			if err := fn(ctx, rec); err != nil {
				failed.Add(1)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		n := int(failed.Load())
		return n, &ApplyError{Failed: n, Total: len(records), Err: err}
	}
	return 0, nil
}
