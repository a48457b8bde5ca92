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

// Command submit-job runs a PySpark job on a new or existing Dataproc
// cluster and prints the driver output.
//
// Example usage on a new cluster:
//
//	submit-job -project=$PROJECT -gcs-bucket=$BUCKET \
//	  -create-new-cluster -cluster-name=$CLUSTER -zone=$ZONE
//
// Example usage on an existing global region cluster:
//
//	submit-job -project=$PROJECT -gcs-bucket=$BUCKET \
//	  -global-region -cluster-name=$CLUSTER -zone=$ZONE
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// Variables to hold the flag's values.
	project          string
	zone             string
	clusterName      string
	gcsBucket        string
	pysparkFile      string
	createNewCluster bool
	globalRegion     bool
)

func init() {
	flag.StringVar(&project, "project", "", "Project ID you want to access")
	flag.StringVar(&zone, "zone", "", "Zone to create clusters in/connect to")
	flag.StringVar(&clusterName, "cluster-name", "", "Name of the cluster to create/connect to")
	flag.StringVar(&gcsBucket, "gcs-bucket", "", "Bucket to upload the PySpark file to")
	flag.StringVar(&pysparkFile, "pyspark-file", "", "PySpark filename, defaults to a bundled sort job")
	flag.BoolVar(&createNewCluster, "create-new-cluster", false, "States if the cluster should be created")
	flag.BoolVar(&globalRegion, "global-region", false, "States if the cluster to run the job on is in the global region")
}

func main() {
	flag.Parse()
	ctx := context.Background()

	if project == "" || zone == "" || clusterName == "" || gcsBucket == "" {
		fmt.Println("the -project, -zone, -cluster-name and -gcs-bucket flags are required")
		os.Exit(1)
	}

	req := &submitRequest{
		projectID:        project,
		zone:             zone,
		clusterName:      clusterName,
		bucketName:       gcsBucket,
		createNewCluster: createNewCluster,
		globalRegion:     globalRegion,
		scriptName:       defaultScriptName,
		script:           []byte(defaultPySparkScript),
	}
	if pysparkFile != "" {
		script, err := os.ReadFile(pysparkFile)
		if err != nil {
			fmt.Printf("cannot read the PySpark file: %v\n", err)
			os.Exit(1)
		}
		req.scriptName = filepath.Base(pysparkFile)
		req.script = script
	}

	output, err := submitJobToCluster(ctx, os.Stdout, req)
	if err != nil {
		fmt.Printf("failed to run the PySpark job: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Received job output:\n%s\n", output)
}
