// Copyright 2024 Google LLC

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     https://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tables

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// PipelineConfig describes one end-to-end Tables run: where the training data
// lives, what to predict, and how much to spend on training.
type PipelineConfig struct {
	Project  string `json:"project"`
	Location string `json:"location"`
	// DatasetDisplayName names both the dataset to create (or reuse) and the
	// model trained from it.
	DatasetDisplayName string `json:"datasetDisplayName"`
	// TrainingDataURI is the gs:// URI of the training CSV.
	TrainingDataURI string `json:"trainingDataUri"`
	// TargetColumn is the display name of the column to predict.
	TargetColumn string `json:"targetColumn"`
	// TrainBudgetMilliNodeHours bounds training cost. 1000 equals one node hour.
	TrainBudgetMilliNodeHours int64 `json:"trainBudgetMilliNodeHours"`
	// BatchPredictInputURI and BatchPredictOutputURI configure the optional
	// prediction stage; both empty means training only.
	BatchPredictInputURI  string `json:"batchPredictInputUri"`
	BatchPredictOutputURI string `json:"batchPredictOutputUri"`
}

// LoadPipelineConfig reads and validates a pipeline config from a YAML file.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading pipeline config file: %v", err)
	}

	config := &PipelineConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("unable to parse pipeline config from %s: %v", path, err)
	}

	if config.Project == "" {
		return nil, fmt.Errorf("pipeline config is missing the project")
	}
	if config.Location == "" {
		config.Location = "us-central1"
	}
	if config.DatasetDisplayName == "" {
		return nil, fmt.Errorf("pipeline config is missing the dataset display name")
	}
	if config.TargetColumn == "" {
		return nil, fmt.Errorf("pipeline config is missing the target column")
	}
	if config.TrainBudgetMilliNodeHours == 0 {
		config.TrainBudgetMilliNodeHours = 1000
	}
	if (config.BatchPredictInputURI == "") != (config.BatchPredictOutputURI == "") {
		return nil, fmt.Errorf("batch prediction needs both an input and an output URI")
	}
	return config, nil
}
