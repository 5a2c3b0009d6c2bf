//go:build linux

package gpio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// pwmPeriod is the fixed PWM period for both speed channels (10 kHz),
// well above audible motor whine for small gearmotors.
const pwmPeriod = 100 * time.Microsecond

// pwmChannel is one exported sysfs PWM channel. gpiocdev has no PWM API,
// so the speed-duty outputs go through /sys/class/pwm directly.
type pwmChannel struct {
	chipDir string
	channel int
	dir     string
}

// openPWM exports the channel, programs the fixed period and duty, and
// enables output. Duty is a percentage of the period, clamped to [0,100].
func openPWM(chip, channel, dutyPercent int) (*pwmChannel, error) {
	if dutyPercent < 0 || dutyPercent > 100 {
		return nil, fmt.Errorf("duty percent out of range: %d", dutyPercent)
	}

	p := &pwmChannel{
		chipDir: fmt.Sprintf("/sys/class/pwm/pwmchip%d", chip),
		channel: channel,
	}
	p.dir = filepath.Join(p.chipDir, fmt.Sprintf("pwm%d", channel))

	// Export is idempotent in effect: EBUSY means the channel is already
	// exported, which is fine (e.g. restart after an unclean shutdown).
	if err := writeSysfs(filepath.Join(p.chipDir, "export"), strconv.Itoa(channel)); err != nil {
		if _, statErr := os.Stat(p.dir); statErr != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	periodNs := pwmPeriod.Nanoseconds()
	dutyNs := periodNs * int64(dutyPercent) / 100

	// Duty must be written before a larger period would make the old duty
	// invalid; writing zero duty first avoids EINVAL on reconfiguration.
	if err := writeSysfs(filepath.Join(p.dir, "duty_cycle"), "0"); err != nil {
		return nil, fmt.Errorf("clear duty: %w", err)
	}
	if err := writeSysfs(filepath.Join(p.dir, "period"), strconv.FormatInt(periodNs, 10)); err != nil {
		return nil, fmt.Errorf("set period: %w", err)
	}
	if err := writeSysfs(filepath.Join(p.dir, "duty_cycle"), strconv.FormatInt(dutyNs, 10)); err != nil {
		return nil, fmt.Errorf("set duty: %w", err)
	}
	if err := writeSysfs(filepath.Join(p.dir, "enable"), "1"); err != nil {
		return nil, fmt.Errorf("enable: %w", err)
	}

	return p, nil
}

// close disables the channel and unexports it.
func (p *pwmChannel) close() error {
	var errs []error
	if err := writeSysfs(filepath.Join(p.dir, "enable"), "0"); err != nil {
		errs = append(errs, fmt.Errorf("disable: %w", err))
	}
	if err := writeSysfs(filepath.Join(p.chipDir, "unexport"), strconv.Itoa(p.channel)); err != nil {
		errs = append(errs, fmt.Errorf("unexport: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func writeSysfs(path, value string) error {
	return os.WriteFile(path, []byte(value), 0o644)
}
