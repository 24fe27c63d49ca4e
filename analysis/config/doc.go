// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package config provides a simple way to manage configuration files.

Use [Load](filename) to load a configuration from a specific filename, or [LoadFromBytes] when the contents are
already in memory.

A config file should be in yaml format. The top-level fields can be any of the fields defined in the Config
struct type and in the [Options] struct type. For example, a valid config file is as follows:

	log-level: 4
	max-iterations: 5000
	num-routines: 4
	types:
	  - name: Queue
	    fields: [head]
	    methods: [peek, size]
	contracts:
	  - name: Queue.isEmpty
	    receiver: Queue
	    postconditions:
	      - result: false
	        qualifier: NonNull
	        expressions: ["peek()"]

# Declarations

The contracts list is the declaration table of the conditional postconditions: each entry names a boolean
operation and, for each boolean result, the expressions that are proven to have the qualifier when the operation
returns that result. An expression is either a field name of the receiver (e.g. "next"), a zero-argument method
of the receiver (e.g. "peek()"), or a parameter index (e.g. "#1").

The config package does not interpret expressions; they are parsed once by the contract package when the declaration
is first looked up.

Additional declaration files can be listed in contract-files; paths are relative to the config file.
*/
package config
