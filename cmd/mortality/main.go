// Command mortality runs the ICU mortality study: it trains a masked LSTM to predict a
// per-timestep mortality probability from the precomputed encounter tensors, then compares its
// discrimination against the PIM2 and PRISM3 clinical baselines with ROC/AUC plots.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	seqnet "github.com/fredyulie123/deep-machine-learning"
	"github.com/fredyulie123/deep-machine-learning/costfuncs"
	"github.com/fredyulie123/deep-machine-learning/dataset"
	"github.com/fredyulie123/deep-machine-learning/hyperparams"
	"github.com/fredyulie123/deep-machine-learning/initializers"
	"github.com/fredyulie123/deep-machine-learning/metrics"
	"github.com/fredyulie123/deep-machine-learning/optimizers"
	"github.com/fredyulie123/deep-machine-learning/viz"
)

var log = logrus.New()

func initConfig() *viper.Viper {
	v := viper.New()

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.train_features", "x_train.npy")
	v.SetDefault("data.train_labels", "y_train.npy")
	v.SetDefault("data.val_features", "x_val.npy")
	v.SetDefault("data.val_labels", "y_val.npy")
	v.SetDefault("data.baselines", "baselines.csv")
	v.SetDefault("data.outcome_column", dataset.DefaultBaselineColumns.Outcome)
	v.SetDefault("data.pim2_column", dataset.DefaultBaselineColumns.PIM2)
	v.SetDefault("data.prism3_column", dataset.DefaultBaselineColumns.PRISM3)

	v.SetDefault("model.features", 265)
	v.SetDefault("model.hidden", 128)
	v.SetDefault("model.dropout", 0.5)
	v.SetDefault("model.recurrent_dropout", 0.5)
	v.SetDefault("model.mask_value", 0.0)

	v.SetDefault("train.batch_size", 128)
	v.SetDefault("train.epochs", 5)
	v.SetDefault("train.learning_rate", 1e-3)
	v.SetDefault("train.seed", 42)
	v.SetDefault("train.shuffle", true)

	v.SetDefault("output.dir", "out")
	v.SetDefault("output.sample_encounter", 0)

	v.SetConfigName("config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MORTALITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.WithError(err).Fatal("reading config failed")
		}
		log.Info("no config file found, using defaults")
	} else {
		log.WithField("file", v.ConfigFileUsed()).Info("config loaded")
	}

	return v
}

func loadTensors(v *viper.Viper) (xTrain, yTrain, xVal, yVal *dataset.Tensor3) {
	dir := v.GetString("data.dir")

	load := func(key string) *dataset.Tensor3 {
		path := filepath.Join(dir, v.GetString(key))

		x, err := dataset.LoadTensor(path)
		if err != nil {
			log.WithError(err).WithField("path", path).Fatal("loading tensor failed")
		}

		n, t, vars := x.Dims()
		log.WithFields(logrus.Fields{
			"path": path, "encounters": n, "timesteps": t, "variables": vars,
		}).Info("tensor loaded")

		return x
	}

	xTrain = load("data.train_features")
	yTrain = load("data.train_labels")
	xVal = load("data.val_features")
	yVal = load("data.val_labels")

	features := v.GetInt("model.features")
	for _, x := range []*dataset.Tensor3{xTrain, xVal} {
		if _, _, vars := x.Dims(); vars != features {
			log.WithFields(logrus.Fields{"want": features, "got": vars}).
				Fatal("feature tensor width does not match model.features")
		}
	}

	for _, y := range []*dataset.Tensor3{yTrain, yVal} {
		if err := dataset.CheckLabelBroadcast(y); err != nil {
			log.WithError(err).Fatal("label tensor violates the broadcast invariant")
		}
	}

	return xTrain, yTrain, xVal, yVal
}

func buildModel(v *viper.Viper) *seqnet.Model {
	seed := uint64(v.GetInt("train.seed"))

	m := seqnet.New(v.GetInt("model.features"), v.GetInt("model.hidden")).
		MaskValue(v.GetFloat64("model.mask_value")).
		Dropout(v.GetFloat64("model.dropout")).
		RecurrentDropout(v.GetFloat64("model.recurrent_dropout")).
		KernelInit(initializers.Glorot().Seed(seed)).
		RecurrentInit(initializers.ScaledUniform().Seed(seed + 1)).
		Seed(seed)

	if err := m.Compile(costfuncs.BinaryCrossEntropy(), optimizers.Adam()); err != nil {
		log.WithError(err).Fatal("compiling model failed")
	}

	log.WithFields(logrus.Fields{
		"features": m.InputSize(),
		"hidden":   m.HiddenSize(),
	}).Info("model compiled")

	return m
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	v := initConfig()
	xTrain, yTrain, xVal, yVal := loadTensors(v)

	trainSup, err := dataset.NewSupplier(xTrain, yTrain)
	if err != nil {
		log.WithError(err).Fatal("building training supplier failed")
	}

	valSup, err := dataset.NewSupplier(xVal, nil)
	if err != nil {
		log.WithError(err).Fatal("building validation supplier failed")
	}

	m := buildModel(v)

	trace, err := m.Fit(seqnet.TrainArgs{
		Data:         trainSup,
		BatchSize:    v.GetInt("train.batch_size"),
		Epochs:       v.GetInt("train.epochs"),
		LearningRate: hyperparams.Constant(v.GetFloat64("train.learning_rate")),
		Shuffle:      v.GetBool("train.shuffle"),
		OnEpoch: func(r seqnet.Result) {
			log.WithFields(logrus.Fields{
				"epoch": r.Epoch, "loss": r.Cost, "timesteps": r.Timesteps,
			}).Info("epoch finished")
		},
	})
	if err != nil {
		log.WithError(err).Fatal("training failed")
	}
	log.WithField("trace", trace).Info("training finished")

	preds, err := m.Predict(valSup)
	if err != nil {
		log.WithError(err).Fatal("inference failed")
	}

	outDir := v.GetString("output.dir")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.WithError(err).Fatal("creating output directory failed")
	}

	plotTrajectory(v, xVal, preds, outDir)
	compareROC(v, preds, yVal, outDir)
}

func plotTrajectory(v *viper.Viper, xVal *dataset.Tensor3, preds [][][]float64, outDir string) {
	i := v.GetInt("output.sample_encounter")
	if n, _, _ := xVal.Dims(); i < 0 || i >= n {
		log.WithField("encounter", i).Fatal("output.sample_encounter is out of range")
	}

	survival := make([]float64, len(preds[i]))
	for t := range survival {
		survival[t] = 1 - preds[i][t][0]
	}

	path := filepath.Join(outDir, "trajectory.png")
	if err := viz.Trajectory(path, xVal.Sequence(i), survival); err != nil {
		log.WithError(err).Fatal("rendering trajectory failed")
	}

	log.WithFields(logrus.Fields{"encounter": i, "path": path}).Info("trajectory rendered")
}

func compareROC(v *viper.Viper, preds [][][]float64, yVal *dataset.Tensor3, outDir string) {
	modelCurve, err := metrics.ROC(dataset.FinalTimestep(preds), dataset.Labels(yVal))
	if err != nil {
		log.WithError(err).Fatal("computing model ROC failed")
	}

	curves := []viz.NamedCurve{{Name: "LSTM", Curve: modelCurve}}
	log.WithField("auc", modelCurve.AUC).Info("model AUC")

	path := filepath.Join(v.GetString("data.dir"), v.GetString("data.baselines"))
	rows, err := dataset.LoadBaselines(path, dataset.BaselineColumns{
		Outcome: v.GetString("data.outcome_column"),
		PIM2:    v.GetString("data.pim2_column"),
		PRISM3:  v.GetString("data.prism3_column"),
	})
	if err != nil {
		log.WithError(err).Fatal("loading baseline scores failed")
	}

	if n, _, _ := yVal.Dims(); len(rows) != n {
		log.WithFields(logrus.Fields{"rows": len(rows), "encounters": n}).
			Warn("baseline table and validation tensor differ in size; baseline curves use the table's own outcomes")
	}

	died := make([]bool, len(rows))
	pim2 := make([]float64, len(rows))
	prism3 := make([]float64, len(rows))
	for i, r := range rows {
		died[i] = r.Died
		pim2[i] = r.PIM2
		prism3[i] = r.PRISM3
	}

	for _, b := range []struct {
		name   string
		scores []float64
	}{
		{"PIM2", pim2},
		{"PRISM3", prism3},
	} {
		c, err := metrics.ROC(b.scores, died)
		if err != nil {
			log.WithError(err).WithField("baseline", b.name).Fatal("computing baseline ROC failed")
		}

		curves = append(curves, viz.NamedCurve{Name: b.name, Curve: c})
		log.WithFields(logrus.Fields{"baseline": b.name, "auc": c.AUC}).Info("baseline AUC")
	}

	out := filepath.Join(outDir, "roc.png")
	if err := viz.ROCOverlay(out, curves); err != nil {
		log.WithError(err).Fatal("rendering ROC overlay failed")
	}

	log.WithField("path", out).Info("ROC comparison rendered")
}
