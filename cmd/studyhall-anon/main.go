// Command studyhall-anon marks an existing topic and post anonymous.
// Operator tool for cleanup after an accidental identified posting;
// refuses to run without an explicit opt-in
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"studyhall/internal/platform/config"
	"studyhall/internal/platform/logger"
	"studyhall/internal/platform/store"
)

func main() {
	if !explicitlyEnabled() {
		fmt.Fprintln(os.Stderr, "Refusing to run without explicit opt-in.")
		fmt.Fprintln(os.Stderr, "Set STUDYHALL_ANON_SCRIPT=1 (or =true) or pass --allow-make-anon.")
		os.Exit(1)
	}

	args := positionalArgs()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: studyhall-anon <topicId> <postId>")
		os.Exit(1)
	}
	tid, err1 := strconv.ParseInt(args[0], 10, 64)
	pid, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil || tid <= 0 || pid <= 0 {
		fmt.Fprintln(os.Stderr, "Error: <topicId> and <postId> must be positive integers.")
		os.Exit(1)
	}

	if !confirm(tid, pid) {
		fmt.Println("Aborted: no changes were made.")
		return
	}

	root := config.New()
	rdCfg := root.Prefix("SERVICE_REDIS_")
	l := logger.Get()

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		RD: store.RDConfig{
			Enabled: true,
			Addr:    rdCfg.MayString("ADDR", "localhost:6379"),
			DB:      rdCfg.MayInt("DB", 0),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() { _ = st.Close(ctx) }()

	tidKey := "topic:" + strconv.FormatInt(tid, 10)
	pidKey := "post:" + strconv.FormatInt(pid, 10)
	if err := st.RD.HashSet(ctx, tidKey, map[string]any{"isAnonymous": "1"}); err != nil {
		l.Panic().Err(err).Str("key", tidKey).Msg("write failed")
	}
	if err := st.RD.HashSet(ctx, pidKey, map[string]any{"isAnonymous": "1"}); err != nil {
		l.Panic().Err(err).Str("key", pidKey).Msg("write failed")
	}

	fmt.Printf("Success! Topic %d and Post %d are now anonymous.\n", tid, pid)
}

func explicitlyEnabled() bool {
	switch os.Getenv("STUDYHALL_ANON_SCRIPT") {
	case "1", "true":
		return true
	}
	return slices.Contains(os.Args[1:], "--allow-make-anon")
}

func positionalArgs() []string {
	var out []string
	for _, a := range os.Args[1:] {
		if !strings.HasPrefix(a, "-") {
			out = append(out, a)
		}
	}
	return out
}

func confirm(tid, pid int64) bool {
	fmt.Printf("About to mark topic %d and post %d as anonymous. Type \"yes\" to confirm: ", tid, pid)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(sc.Text()), "yes")
}
