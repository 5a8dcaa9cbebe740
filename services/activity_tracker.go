package services

import (
	"log"
	"sync"
	"time"

	"backend/repository"
)

// The app pins "today" to a fixed UTC+5 offset so a user's streak day does
// not shift with whichever device or server handles the request.
var appZone = time.FixedZone("UTC+5", 5*60*60)

const (
	activityThreshold = 3 * time.Minute
	activityTick      = 30 * time.Second
)

type activitySession struct {
	start time.Time
	stop  chan struct{}
	once  sync.Once
}

func (s *activitySession) close() {
	s.once.Do(func() { close(s.stop) })
}

// PushNotifier delivers a fire-and-forget notification to a user.
type PushNotifier interface {
	PushToUser(uid, title, body string, data map[string]string)
}

// ActivityTracker runs the foreground/background streak state machine.
// The mobile client reports app-state transitions; the tracker measures
// foreground time per user and appends today's date to the streak set once
// the threshold is met.
type ActivityTracker struct {
	streaks repository.StreakRepository
	users   repository.UserRepository
	notify  PushNotifier // optional

	mu       sync.Mutex
	sessions map[string]*activitySession

	now       func() time.Time
	tick      time.Duration
	threshold time.Duration
}

func NewActivityTracker(streaks repository.StreakRepository, users repository.UserRepository, notify PushNotifier) *ActivityTracker {
	return &ActivityTracker{
		streaks:   streaks,
		users:     users,
		notify:    notify,
		sessions:  make(map[string]*activitySession),
		now:       time.Now,
		tick:      activityTick,
		threshold: activityThreshold,
	}
}

// Today returns the current date string in the app timezone.
func (t *ActivityTracker) Today() string {
	return t.now().In(appZone).Format("2006-01-02")
}

// Foreground starts (or restarts) the activity timer for a user. If
// today's date is already in the streak set there is nothing to measure.
func (t *ActivityTracker) Foreground(uid string) error {
	done, err := t.streaks.Has(uid, t.Today())
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	sess := &activitySession{start: t.now(), stop: make(chan struct{})}

	t.mu.Lock()
	if prev, ok := t.sessions[uid]; ok {
		prev.close()
	}
	t.sessions[uid] = sess
	t.mu.Unlock()

	go t.run(uid, sess)
	return nil
}

// Background stops the timer and evaluates the threshold one final time,
// covering the case where the app is closed before the next tick.
func (t *ActivityTracker) Background(uid string) error {
	t.mu.Lock()
	sess, ok := t.sessions[uid]
	if ok {
		delete(t.sessions, uid)
	}
	t.mu.Unlock()

	if !ok {
		return nil
	}
	sess.close()
	_, err := t.evaluate(uid, sess)
	return err
}

func (t *ActivityTracker) run(uid string, sess *activitySession) {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-sess.stop:
			return
		case <-ticker.C:
			met, err := t.evaluate(uid, sess)
			if err != nil {
				log.Printf("activity check failed for %s: %v", uid, err)
				continue
			}
			if met {
				t.mu.Lock()
				if t.sessions[uid] == sess {
					delete(t.sessions, uid)
				}
				t.mu.Unlock()
				sess.close()
				return
			}
		}
	}
}

// evaluate records today's streak if the session has been in the
// foreground long enough. It re-checks presence before appending so a
// tick racing a background transition writes at most once.
func (t *ActivityTracker) evaluate(uid string, sess *activitySession) (bool, error) {
	elapsed := t.now().Sub(sess.start)
	if elapsed < t.threshold {
		return false, nil
	}

	today := t.Today()
	done, err := t.streaks.Has(uid, today)
	if err != nil {
		return false, err
	}
	if done {
		return true, nil
	}

	if err := t.streaks.Append(uid, today); err != nil {
		return false, err
	}

	user, err := t.users.ByUID(uid)
	if err != nil {
		return true, err
	}
	user.DailyGoalMet = true
	user.LastActiveDate = today
	user.DailyActiveSeconds = int64(elapsed / time.Second)
	if err := t.users.Save(user); err != nil {
		return true, err
	}

	if t.notify != nil {
		t.notify.PushToUser(uid, "Streak extended!",
			"You hit your daily goal today. See you tomorrow.",
			map[string]string{"date": today})
	}
	return true, nil
}
