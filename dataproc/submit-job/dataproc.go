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

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	dataproc "cloud.google.com/go/dataproc/v2/apiv1"
	"cloud.google.com/go/dataproc/v2/apiv1/dataprocpb"
	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/GoogleCloudPlatform/go-docs-samples/internal/gcsx"
)

const defaultScriptName = "pyspark_sort.py"

// defaultPySparkScript sorts a short list of names and prints the result to
// the driver output.
const defaultPySparkScript = `import pyspark
sc = pyspark.SparkContext()
rdd = sc.parallelize(['Hello,', 'world!', 'dog', 'elephant', 'panther'])
words = sorted(rdd.collect())
print(words)
`

const (
	// Period between polls of cluster and job state.
	pollInterval = 10 * time.Second
	// Clusters and jobs that take longer than this are treated as failed.
	pollingTimeout = 30 * time.Minute
)

// submitRequest carries everything needed to run the PySpark job.
type submitRequest struct {
	projectID        string
	zone             string
	clusterName      string
	bucketName       string
	createNewCluster bool
	globalRegion     bool
	scriptName       string
	script           []byte
}

// regionFromZone derives the region from a zone name, e.g. "us-central1-a"
// becomes "us-central1".
func regionFromZone(zone string) (string, error) {
	parts := strings.Split(zone, "-")
	if len(parts) < 3 {
		return "", fmt.Errorf("invalid zone %q provided, please check your input", zone)
	}
	return strings.Join(parts[:len(parts)-1], "-"), nil
}

// driverOutputObject returns the Cloud Storage object name Dataproc writes the
// first chunk of driver output to.
func driverOutputObject(clusterID, jobID string) string {
	return fmt.Sprintf("google-cloud-dataproc-metainfo/%s/jobs/%s/driveroutput.000000000", clusterID, jobID)
}

// regionalClientOptions returns the client options for the region. Non-global
// regions use a regional gRPC endpoint.
// See https://cloud.google.com/dataproc/docs/concepts/regional-endpoints
func regionalClientOptions(region string) []option.ClientOption {
	if region == "global" {
		return nil
	}
	return []option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-dataproc.googleapis.com:443", region)),
	}
}

// createCluster starts creation of a two worker cluster in the zone.
func createCluster(ctx context.Context, w io.Writer, client *dataproc.ClusterControllerClient, projectID, zone, region, clusterName string) error {
	fmt.Fprintln(w, "Creating cluster...")
	zoneURI := fmt.Sprintf("https://www.googleapis.com/compute/v1/projects/%s/zones/%s", projectID, zone)
	req := &dataprocpb.CreateClusterRequest{
		ProjectId: projectID,
		Region:    region,
		Cluster: &dataprocpb.Cluster{
			ProjectId:   projectID,
			ClusterName: clusterName,
			Config: &dataprocpb.ClusterConfig{
				GceClusterConfig: &dataprocpb.GceClusterConfig{
					ZoneUri: zoneURI,
				},
				MasterConfig: &dataprocpb.InstanceGroupConfig{
					NumInstances:   1,
					MachineTypeUri: "n1-standard-2",
				},
				WorkerConfig: &dataprocpb.InstanceGroupConfig{
					NumInstances:   2,
					MachineTypeUri: "n1-standard-2",
				},
			},
		},
	}
	if _, err := client.CreateCluster(ctx, req); err != nil {
		return fmt.Errorf("CreateCluster: %w", err)
	}
	return nil
}

// findCluster returns the cluster with the given name, or nil if the region
// has no such cluster.
func findCluster(ctx context.Context, client *dataproc.ClusterControllerClient, projectID, region, clusterName string) (*dataprocpb.Cluster, error) {
	it := client.ListClusters(ctx, &dataprocpb.ListClustersRequest{
		ProjectId: projectID,
		Region:    region,
	})
	for {
		cluster, err := it.Next()
		if err == iterator.Done {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("ListClusters.Next: %w", err)
		}
		if cluster.GetClusterName() == clusterName {
			return cluster, nil
		}
	}
}

// waitForCluster polls until the cluster reaches the RUNNING state.
func waitForCluster(ctx context.Context, w io.Writer, client *dataproc.ClusterControllerClient, projectID, region, clusterName string) error {
	fmt.Fprintln(w, "Waiting for cluster creation...")
	err := wait.PollUntilContextTimeout(ctx, pollInterval, pollingTimeout, true, func(ctx context.Context) (bool, error) {
		cluster, err := findCluster(ctx, client, projectID, region, clusterName)
		if err != nil {
			return false, err
		}
		if cluster == nil {
			return false, nil
		}
		switch cluster.GetStatus().GetState() {
		case dataprocpb.ClusterStatus_ERROR:
			return false, fmt.Errorf("cluster creation failed: %s", cluster.GetStatus().GetDetail())
		case dataprocpb.ClusterStatus_RUNNING:
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Cluster created.")
	return nil
}

// listClustersWithDetails prints the name and state of every cluster in the
// region.
func listClustersWithDetails(ctx context.Context, w io.Writer, client *dataproc.ClusterControllerClient, projectID, region string) error {
	it := client.ListClusters(ctx, &dataprocpb.ListClustersRequest{
		ProjectId: projectID,
		Region:    region,
	})
	for {
		cluster, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("ListClusters.Next: %w", err)
		}
		fmt.Fprintf(w, "%s - %s\n", cluster.GetClusterName(), cluster.GetStatus().GetState())
	}
}

// submitPySparkJob submits the PySpark job to the cluster. The script is
// assumed to have been uploaded to the bucket already.
func submitPySparkJob(ctx context.Context, w io.Writer, client *dataproc.JobControllerClient, projectID, region, clusterName, bucketName, scriptName string) (string, error) {
	req := &dataprocpb.SubmitJobRequest{
		ProjectId: projectID,
		Region:    region,
		Job: &dataprocpb.Job{
			Placement: &dataprocpb.JobPlacement{
				ClusterName: clusterName,
			},
			TypeJob: &dataprocpb.Job_PysparkJob{
				PysparkJob: &dataprocpb.PySparkJob{
					MainPythonFileUri: fmt.Sprintf("gs://%s/%s", bucketName, scriptName),
				},
			},
		},
	}
	job, err := client.SubmitJob(ctx, req)
	if err != nil {
		return "", fmt.Errorf("SubmitJob: %w", err)
	}
	jobID := job.GetReference().GetJobId()
	fmt.Fprintf(w, "Submitted job ID %q.\n", jobID)
	return jobID, nil
}

// waitForJob polls until the job completes or errors out.
func waitForJob(ctx context.Context, w io.Writer, client *dataproc.JobControllerClient, projectID, region, jobID string) error {
	fmt.Fprintln(w, "Waiting for job to finish...")
	err := wait.PollUntilContextTimeout(ctx, pollInterval, pollingTimeout, true, func(ctx context.Context) (bool, error) {
		job, err := client.GetJob(ctx, &dataprocpb.GetJobRequest{
			ProjectId: projectID,
			Region:    region,
			JobId:     jobID,
		})
		if err != nil {
			return false, fmt.Errorf("GetJob: %w", err)
		}
		switch job.GetStatus().GetState() {
		case dataprocpb.JobStatus_ERROR:
			return false, fmt.Errorf("job failed: %s", job.GetStatus().GetDetails())
		case dataprocpb.JobStatus_DONE:
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Job finished.")
	return nil
}

// deleteCluster tears the cluster down and waits for the deletion to finish.
func deleteCluster(ctx context.Context, w io.Writer, client *dataproc.ClusterControllerClient, projectID, region, clusterName string) error {
	fmt.Fprintln(w, "Tearing down cluster.")
	op, err := client.DeleteCluster(ctx, &dataprocpb.DeleteClusterRequest{
		ProjectId:   projectID,
		Region:      region,
		ClusterName: clusterName,
	})
	if err != nil {
		return fmt.Errorf("DeleteCluster: %w", err)
	}
	return op.Wait(ctx)
}

// withNewCluster creates a cluster, waits for it to come up, and runs fn on
// it. Once creation succeeds the cluster is always torn down, including when
// the wait or fn fails, so no half-created cluster is left billing.
func withNewCluster(ctx context.Context, create, waitRunning, teardown, fn func(context.Context) error) (err error) {
	if err := create(ctx); err != nil {
		return err
	}
	defer func() {
		if derr := teardown(ctx); derr != nil && err == nil {
			err = derr
		}
	}()
	if err := waitRunning(ctx); err != nil {
		return err
	}
	return fn(ctx)
}

// submitJobToCluster sequences the whole sample: create the cluster when
// requested, stage the script, submit the job, wait for it and fetch the
// driver output. A cluster this run created is deleted on the way out.
func submitJobToCluster(ctx context.Context, w io.Writer, req *submitRequest) ([]byte, error) {
	region := "global"
	if !req.globalRegion {
		var err error
		region, err = regionFromZone(req.zone)
		if err != nil {
			return nil, err
		}
	}
	opts := regionalClientOptions(region)

	clusterClient, err := dataproc.NewClusterControllerClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewClusterControllerClient: %w", err)
	}
	defer clusterClient.Close()

	jobClient, err := dataproc.NewJobControllerClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewJobControllerClient: %w", err)
	}
	defer jobClient.Close()

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	defer storageClient.Close()

	var output []byte
	runJob := func(ctx context.Context) error {
		fmt.Fprintln(w, "Uploading PySpark file to GCS.")
		if err := gcsx.Upload(ctx, storageClient, req.bucketName, req.scriptName, &gcsx.UploadContent{Data: req.script}); err != nil {
			return err
		}

		if err := listClustersWithDetails(ctx, w, clusterClient, req.projectID, region); err != nil {
			return err
		}

		cluster, err := findCluster(ctx, clusterClient, req.projectID, region, req.clusterName)
		if err != nil {
			return err
		}
		if cluster == nil {
			return fmt.Errorf("cluster %q not found in region %q", req.clusterName, region)
		}

		jobID, err := submitPySparkJob(ctx, w, jobClient, req.projectID, region, req.clusterName, req.bucketName, req.scriptName)
		if err != nil {
			return err
		}
		if err := waitForJob(ctx, w, jobClient, req.projectID, region, jobID); err != nil {
			return err
		}

		fmt.Fprintln(w, "Downloading output file.")
		object := driverOutputObject(cluster.GetClusterUuid(), jobID)
		output, err = gcsx.Download(ctx, storageClient, cluster.GetConfig().GetConfigBucket(), object)
		return err
	}

	if !req.createNewCluster {
		if err := runJob(ctx); err != nil {
			return nil, err
		}
		return output, nil
	}

	err = withNewCluster(ctx,
		func(ctx context.Context) error {
			return createCluster(ctx, w, clusterClient, req.projectID, req.zone, region, req.clusterName)
		},
		func(ctx context.Context) error {
			return waitForCluster(ctx, w, clusterClient, req.projectID, region, req.clusterName)
		},
		func(ctx context.Context) error {
			return deleteCluster(ctx, w, clusterClient, req.projectID, region, req.clusterName)
		},
		runJob,
	)
	if err != nil {
		return nil, err
	}
	return output, nil
}
