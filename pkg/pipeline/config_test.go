package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/telemetry.go/pkg/sim"
	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

func TestConfigNewPipeline(t *testing.T) {
	cases := []struct {
		name    string
		sensor  string
		halt    bool
		variant Variant
		policy  telemetry.Policy
	}{
		{"ranging", "tof", false, Ranging, telemetry.PolicyLogAndContinue},
		{"weather", "env", true, Weather, telemetry.PolicyHalt},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conf := NewConfig()
			conf.Sensor, conf.HaltOnError = c.sensor, c.halt
			p, closer, err := conf.NewPipeline()
			require.NoError(t, err)
			defer closer.Close()
			require.Equal(t, c.variant.Name, p.Variant.Name)
			require.Equal(t, c.variant.Period, p.Variant.Period)
			require.Equal(t, c.policy, p.Policy)
			require.Equal(t, RoleBoth, p.Role)
			require.IsType(t, &sim.Grid{}, p.Display)
			require.IsType(t, &sim.LED{}, p.Indicator)
			require.Nil(t, p.Link)
		})
	}
	t.Run("unknown sensor", func(t *testing.T) {
		conf := NewConfig()
		conf.Sensor = "sonar"
		_, _, err := conf.NewPipeline()
		require.Error(t, err)
	})
}
