// Copyright (c) 2025, KI7MT.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tuning

// SysctlConf is the kernel tuning profile written to /etc/sysctl.d.
// Values are fixed; the file is overwritten wholesale on every run so the
// host always converges to the same state.
const SysctlConf = `# ai-lab kernel tuning - managed by ailab, do not edit
net.core.rmem_max = 268435456
net.core.wmem_max = 268435456
net.core.rmem_default = 16777216
net.core.wmem_default = 16777216
net.core.netdev_max_backlog = 30000
net.core.somaxconn = 4096
net.ipv4.tcp_rmem = 4096 87380 134217728
net.ipv4.tcp_wmem = 4096 65536 134217728
net.ipv4.tcp_max_syn_backlog = 8192
net.ipv4.tcp_slow_start_after_idle = 0
vm.swappiness = 10
vm.dirty_ratio = 40
vm.dirty_background_ratio = 10
vm.max_map_count = 262144
vm.overcommit_memory = 0
fs.file-max = 2097152
fs.nr_open = 2097152
fs.aio-max-nr = 1048576
kernel.shmmax = 68719476736
kernel.shmall = 4294967296
kernel.pid_max = 4194304
`

// LimitsConf raises user resource limits for database and ML workloads.
const LimitsConf = `# ai-lab resource limits - managed by ailab, do not edit
* soft nofile 1048576
* hard nofile 1048576
* soft nproc 65536
* hard nproc 65536
* soft memlock unlimited
* hard memlock unlimited
`

// ClickHouseConf tunes the ClickHouse server for a single-host lab:
// memory ceiling relative to RAM, thread pools, compression, and caches.
const ClickHouseConf = `<clickhouse>
    <max_server_memory_usage_to_ram_ratio>0.75</max_server_memory_usage_to_ram_ratio>
    <max_thread_pool_size>10000</max_thread_pool_size>
    <background_pool_size>16</background_pool_size>
    <background_schedule_pool_size>16</background_schedule_pool_size>
    <uncompressed_cache_size>8589934592</uncompressed_cache_size>
    <mark_cache_size>5368709120</mark_cache_size>
    <compression>
        <case>
            <method>lz4</method>
        </case>
    </compression>
</clickhouse>
`

// CUDAProfile exports the CUDA toolkit paths for login shells.
const CUDAProfile = `# ai-lab CUDA environment - managed by ailab, do not edit
export PATH=/usr/local/cuda/bin${PATH:+:${PATH}}
export LD_LIBRARY_PATH=/usr/local/cuda/lib64${LD_LIBRARY_PATH:+:${LD_LIBRARY_PATH}}
`

// ClickHouseRepo is the repository definition for the ClickHouse stable RPMs.
const ClickHouseRepo = `[clickhouse-stable]
name=ClickHouse - Stable Repository
baseurl=https://packages.clickhouse.com/rpm/stable/
gpgkey=https://packages.clickhouse.com/rpm/stable/repodata/repomd.xml.key
gpgcheck=1
enabled=1
`
