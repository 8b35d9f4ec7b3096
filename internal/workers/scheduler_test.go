package workers

import (
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	cron string
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (f *fakeRegistrar) Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.cron, f.task, f.opts = cronspec, task, opts
	return "entry-1", nil
}

func TestRegisterReplenish(t *testing.T) {
	r := &fakeRegistrar{}
	id, err := registerReplenish(r, ScheduleConfig{
		ReplenishCron:    "0 0 * * *",
		Timezone:         "America/Fortaleza",
		ReplenishMinimum: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "entry-1", id)
	assert.Equal(t, "0 0 * * *", r.cron)
	assert.Equal(t, TypeReplenishStock, r.task.Type())
	assert.JSONEq(t, `{"minimum":10}`, string(r.task.Payload()))
	require.Len(t, r.opts, 1)
	assert.Equal(t, asynq.QueueOpt, r.opts[0].Type())
	assert.Equal(t, "default", r.opts[0].Value())
}

func TestRegisterReplenish_Errors(t *testing.T) {
	_, err := registerReplenish(&fakeRegistrar{}, ScheduleConfig{ReplenishCron: "0 0 * * *", ReplenishMinimum: -5})
	assert.Error(t, err)

	_, err = registerReplenish(&fakeRegistrar{err: errors.New("bad cron")}, ScheduleConfig{ReplenishCron: "nope"})
	assert.ErrorContains(t, err, "bad cron")
}

func TestNewScheduler_InvalidTimezone(t *testing.T) {
	_, err := NewScheduler(asynq.RedisClientOpt{Addr: "localhost:0"}, ScheduleConfig{
		ReplenishCron: "0 0 * * *",
		Timezone:      "Nowhere/Special",
	}, nil)
	assert.Error(t, err)
}
