package analysis

// Config carries every numeric parameter of an analysis run. It is supplied
// once per session and never mutated during one; the engine itself reads no
// files or environment, that is the caller's layer. The yaml tags only exist
// so the application config can embed and override the defaults.
type Config struct {
	RSI struct {
		Period     int     `yaml:"period"`
		Overbought float64 `yaml:"overbought"`
		Oversold   float64 `yaml:"oversold"`
	} `yaml:"rsi"`
	MACD struct {
		Fast   int `yaml:"fast"`
		Slow   int `yaml:"slow"`
		Signal int `yaml:"signal"`
	} `yaml:"macd"`
	Bollinger struct {
		Period int     `yaml:"period"`
		StdDev float64 `yaml:"std_dev"`
	} `yaml:"bollinger"`
	ATR struct {
		Period int `yaml:"period"`
	} `yaml:"atr"`
	Stochastic struct {
		K int `yaml:"k"`
		D int `yaml:"d"`
	} `yaml:"stochastic"`
	ADX struct {
		Period int `yaml:"period"`
	} `yaml:"adx"`
	SAR struct {
		Accel    float64 `yaml:"accel"`
		MaxAccel float64 `yaml:"max_accel"`
	} `yaml:"sar"`
	MA struct {
		Periods []int `yaml:"periods"`
	} `yaml:"ma"`
	Volume struct {
		MAPeriod   int     `yaml:"ma_period"`
		SpikeRatio float64 `yaml:"spike_ratio"`
	} `yaml:"volume"`
	Levels struct {
		Window    int     `yaml:"window"`
		Tolerance float64 `yaml:"tolerance"` // fraction of the window's price range
		MaxLevels int     `yaml:"max_levels"`
	} `yaml:"levels"`
	Fibonacci struct {
		Ratios []float64 `yaml:"ratios"`
	} `yaml:"fibonacci"`
	Ichimoku struct {
		Conversion   int `yaml:"conversion"`
		Base         int `yaml:"base"`
		Leading      int `yaml:"leading"`
		Displacement int `yaml:"displacement"`
	} `yaml:"ichimoku"`
}

// DefaultConfig returns the conventional parameter set.
func DefaultConfig() Config {
	var c Config
	c.RSI.Period = 14
	c.RSI.Overbought = 70
	c.RSI.Oversold = 30
	c.MACD.Fast = 12
	c.MACD.Slow = 26
	c.MACD.Signal = 9
	c.Bollinger.Period = 20
	c.Bollinger.StdDev = 2
	c.ATR.Period = 14
	c.Stochastic.K = 14
	c.Stochastic.D = 3
	c.ADX.Period = 14
	c.SAR.Accel = 0.02
	c.SAR.MaxAccel = 0.2
	c.MA.Periods = []int{20, 50, 200}
	c.Volume.MAPeriod = 20
	c.Volume.SpikeRatio = 1.5
	c.Levels.Window = 20
	c.Levels.Tolerance = 0.01
	c.Levels.MaxLevels = 5
	c.Ichimoku.Conversion = 9
	c.Ichimoku.Base = 26
	c.Ichimoku.Leading = 52
	c.Ichimoku.Displacement = 26
	return c
}
