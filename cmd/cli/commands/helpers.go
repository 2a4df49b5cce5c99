package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SCS-Technik/Assixx-sub012/pkg/db"
)

// parseDate parses a YYYY-MM-DD command argument.
func parseDate(arg string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", arg, err)
	}
	return d, nil
}

// parseUserGroups parses user:group arguments ("42:F") into the user id
// list and shift-group map the assignment service expects.
func parseUserGroups(args []string) ([]int, db.ShiftGroupMap, error) {
	userIDs := make([]int, 0, len(args))
	groups := make(db.ShiftGroupMap, len(args))

	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 2)
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("invalid assignment %q, expected <user_id>:<F|S|N>", arg)
		}
		userID, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid user id in %q: %w", arg, err)
		}
		group := db.ShiftGroup(strings.ToUpper(parts[1]))
		if !group.Valid() {
			return nil, nil, fmt.Errorf("invalid shift group in %q, expected F, S or N", arg)
		}
		userIDs = append(userIDs, userID)
		groups[userID] = group
	}

	return userIDs, groups, nil
}

// formatTeam renders an optional team id for display.
func formatTeam(teamID *int) string {
	if teamID == nil {
		return "-"
	}
	return strconv.Itoa(*teamID)
}
