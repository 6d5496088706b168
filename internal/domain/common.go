package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/dawerha/backend/internal/domain/activation"
	"github.com/dawerha/backend/pkg/dateutil"
	"github.com/dawerha/backend/pkg/errorx"
	"github.com/dawerha/backend/pkg/xcontext"
)

var (
	slugPattern  = regexp.MustCompile("^[a-z0-9-]+$")
	phonePattern = regexp.MustCompile("^05[0-9]{8}$")
)

// referenceLocation is the timezone every wall-clock rule is evaluated in.
func referenceLocation(ctx context.Context) *time.Location {
	name := xcontext.Configs(ctx).Scheduler.ReferenceTimezone
	if name == "" || name == dateutil.ReferenceTimezone {
		return dateutil.ReferenceLocation()
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Invalid reference timezone %s, fallback to %s: %v",
			name, dateutil.ReferenceTimezone, err)
		return dateutil.ReferenceLocation()
	}

	return loc
}

func checkTenantSlug(slug string) error {
	if len(slug) < 3 {
		return errorx.New(errorx.BadRequest, "Slug too short (at least 3 characters)")
	}

	if len(slug) > 64 {
		return errorx.New(errorx.BadRequest, "Slug too long (at most 64 characters)")
	}

	if !slugPattern.MatchString(slug) {
		return errorx.New(errorx.BadRequest, "Slug contains invalid characters")
	}

	return nil
}

func checkActiveHours(hours int) error {
	if hours < 1 || hours > activation.MaxActiveHours {
		return errorx.New(errorx.BadRequest, "Active hours must be between 1 and %d", activation.MaxActiveHours)
	}

	return nil
}

// checkVisitorPhone accepts an empty phone, which is optional.
func checkVisitorPhone(phone string) error {
	if phone != "" && !phonePattern.MatchString(phone) {
		return errorx.New(errorx.BadRequest, "Invalid phone number, it must start with 05 and contain 10 digits")
	}

	return nil
}

func parseDays(days []string) (activation.Days, error) {
	var result activation.Days
	for _, d := range days {
		weekday, err := activation.ParseWeekday(d)
		if err != nil {
			return result, errorx.New(errorx.BadRequest, "Invalid day %s", strings.TrimSpace(d))
		}

		result[weekday] = true
	}

	return result, nil
}
