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

// Package tables wraps the AutoML Tables v1beta1 surface with the handful of
// calls the training pipeline drives: dataset creation and import, schema
// updates, model training and batch prediction.
package tables

import (
	"context"
	"fmt"
	"strings"

	automl "cloud.google.com/go/automl/apiv1beta1"
	"cloud.google.com/go/automl/apiv1beta1/automlpb"
	"google.golang.org/api/iterator"
)

// Client bundles the AutoML clients used by the pipeline.
type Client struct {
	automl     *automl.Client
	prediction *automl.PredictionClient
}

// NewClient creates the underlying AutoML clients.
func NewClient(ctx context.Context) (*Client, error) {
	c, err := automl.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewClient: %w", err)
	}
	p, err := automl.NewPredictionClient(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("NewPredictionClient: %w", err)
	}
	return &Client{automl: c, prediction: p}, nil
}

// Close closes the underlying clients.
func (c *Client) Close() error {
	perr := c.prediction.Close()
	if err := c.automl.Close(); err != nil {
		return err
	}
	return perr
}

// locationPath returns the resource name of a project location.
func locationPath(project, location string) string {
	return fmt.Sprintf("projects/%s/locations/%s", project, location)
}

// resourceID returns the trailing ID segment of a resource name.
func resourceID(name string) string {
	parts := strings.Split(name, "/")
	return parts[len(parts)-1]
}

// ListDatasetsByDisplayName returns the datasets in the location whose display
// name matches exactly.
func (c *Client) ListDatasetsByDisplayName(ctx context.Context, project, location, displayName string) ([]*automlpb.Dataset, error) {
	it := c.automl.ListDatasets(ctx, &automlpb.ListDatasetsRequest{
		Parent: locationPath(project, location),
		Filter: fmt.Sprintf("display_name=%s", displayName),
	})
	var datasets []*automlpb.Dataset
	for {
		d, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListDatasets.Next: %w", err)
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

// ListModelsByDisplayName returns the models in the location whose display
// name matches exactly.
func (c *Client) ListModelsByDisplayName(ctx context.Context, project, location, displayName string) ([]*automlpb.Model, error) {
	it := c.automl.ListModels(ctx, &automlpb.ListModelsRequest{
		Parent: locationPath(project, location),
		Filter: fmt.Sprintf("display_name=%s", displayName),
	})
	var models []*automlpb.Model
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListModels.Next: %w", err)
		}
		models = append(models, m)
	}
	return models, nil
}

// CreateDataset creates an empty Tables dataset.
func (c *Client) CreateDataset(ctx context.Context, project, location, displayName string) (*automlpb.Dataset, error) {
	dataset, err := c.automl.CreateDataset(ctx, &automlpb.CreateDatasetRequest{
		Parent: locationPath(project, location),
		Dataset: &automlpb.Dataset{
			DisplayName: displayName,
			DatasetMetadata: &automlpb.Dataset_TablesDatasetMetadata{
				TablesDatasetMetadata: &automlpb.TablesDatasetMetadata{},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("CreateDataset: %w", err)
	}
	return dataset, nil
}

// ImportData imports CSV data from Cloud Storage into the dataset and waits
// for the import to finish.
func (c *Client) ImportData(ctx context.Context, datasetName, gcsInputURI string) error {
	op, err := c.automl.ImportData(ctx, &automlpb.ImportDataRequest{
		Name: datasetName,
		InputConfig: &automlpb.InputConfig{
			Source: &automlpb.InputConfig_GcsSource{
				GcsSource: &automlpb.GcsSource{
					InputUris: []string{gcsInputURI},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ImportData: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("ImportData.Wait: %w", err)
	}
	return nil
}

// PrimaryTableSpec returns the table spec the dataset's metadata points at.
func (c *Client) PrimaryTableSpec(ctx context.Context, dataset *automlpb.Dataset) (*automlpb.TableSpec, error) {
	md := dataset.GetTablesDatasetMetadata()
	if md == nil {
		return nil, fmt.Errorf("dataset %s is not a Tables dataset", dataset.GetName())
	}
	name := fmt.Sprintf("%s/tableSpecs/%s", dataset.GetName(), md.GetPrimaryTableSpecId())
	spec, err := c.automl.GetTableSpec(ctx, &automlpb.GetTableSpecRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("GetTableSpec: %w", err)
	}
	return spec, nil
}

// ColumnSpecs returns the column specs of the dataset's primary table keyed by
// display name.
func (c *Client) ColumnSpecs(ctx context.Context, dataset *automlpb.Dataset) (map[string]*automlpb.ColumnSpec, error) {
	table, err := c.PrimaryTableSpec(ctx, dataset)
	if err != nil {
		return nil, err
	}
	it := c.automl.ListColumnSpecs(ctx, &automlpb.ListColumnSpecsRequest{
		Parent: table.GetName(),
	})
	specs := map[string]*automlpb.ColumnSpec{}
	for {
		s, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListColumnSpecs.Next: %w", err)
		}
		specs[s.GetDisplayName()] = s
	}
	return specs, nil
}

// SetTargetColumn updates the dataset metadata to train against the named
// column.
func (c *Client) SetTargetColumn(ctx context.Context, dataset *automlpb.Dataset, columnDisplayName string) (*automlpb.Dataset, error) {
	specs, err := c.ColumnSpecs(ctx, dataset)
	if err != nil {
		return nil, err
	}
	spec, ok := specs[columnDisplayName]
	if !ok {
		return nil, fmt.Errorf("no column named %q in dataset %s", columnDisplayName, dataset.GetName())
	}

	md := dataset.GetTablesDatasetMetadata()
	md.TargetColumnSpecId = resourceID(spec.GetName())
	updated, err := c.automl.UpdateDataset(ctx, &automlpb.UpdateDatasetRequest{
		Dataset: &automlpb.Dataset{
			Name: dataset.GetName(),
			DatasetMetadata: &automlpb.Dataset_TablesDatasetMetadata{
				TablesDatasetMetadata: md,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("UpdateDataset: %w", err)
	}
	return updated, nil
}

// UpdateColumnType sets the data type of a column, optionally marking it
// nullable.
func (c *Client) UpdateColumnType(ctx context.Context, spec *automlpb.ColumnSpec, typeCode automlpb.TypeCode, nullable bool) (*automlpb.ColumnSpec, error) {
	updated, err := c.automl.UpdateColumnSpec(ctx, &automlpb.UpdateColumnSpecRequest{
		ColumnSpec: &automlpb.ColumnSpec{
			Name: spec.GetName(),
			DataType: &automlpb.DataType{
				TypeCode: typeCode,
				Nullable: nullable,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("UpdateColumnSpec: %w", err)
	}
	return updated, nil
}

// CreateModel trains a Tables model on the dataset and waits for training to
// finish. trainBudgetMilliNodeHours bounds the training cost.
func (c *Client) CreateModel(ctx context.Context, project, location, datasetName, displayName string, trainBudgetMilliNodeHours int64) (*automlpb.Model, error) {
	op, err := c.automl.CreateModel(ctx, &automlpb.CreateModelRequest{
		Parent: locationPath(project, location),
		Model: &automlpb.Model{
			DisplayName: displayName,
			DatasetId:   resourceID(datasetName),
			ModelMetadata: &automlpb.Model_TablesModelMetadata{
				TablesModelMetadata: &automlpb.TablesModelMetadata{
					TrainBudgetMilliNodeHours: trainBudgetMilliNodeHours,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("CreateModel: %w", err)
	}
	model, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("CreateModel.Wait: %w", err)
	}
	return model, nil
}

// BatchPredict runs batch prediction reading CSV rows from inputURI and
// writing results under outputURI, waiting for the job to finish.
func (c *Client) BatchPredict(ctx context.Context, modelName, inputURI, outputURI string) error {
	op, err := c.prediction.BatchPredict(ctx, &automlpb.BatchPredictRequest{
		Name: modelName,
		InputConfig: &automlpb.BatchPredictInputConfig{
			Source: &automlpb.BatchPredictInputConfig_GcsSource{
				GcsSource: &automlpb.GcsSource{
					InputUris: []string{inputURI},
				},
			},
		},
		OutputConfig: &automlpb.BatchPredictOutputConfig{
			Destination: &automlpb.BatchPredictOutputConfig_GcsDestination{
				GcsDestination: &automlpb.GcsDestination{
					OutputUriPrefix: outputURI,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("BatchPredict: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("BatchPredict.Wait: %w", err)
	}
	return nil
}
