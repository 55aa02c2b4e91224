/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package riak

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/carverauto/nodewarden/pkg/models"
	"github.com/carverauto/nodewarden/pkg/sensor"
)

const defaultVersion = "2.0.5"

var (
	errIDRequired   = errors.New("riak node id is required")
	errHostRequired = errors.New("riak node host is required")
)

//nolint:gochecknoglobals // config key catalog
var (
	VMArgsTemplateURL    = sensor.NewConfigKey[string]("riak.vmArgs.templateUrl", "Template for the vm.args file")
	AppConfigTemplateURL = sensor.NewConfigKey[string]("riak.appConfig.templateUrl", "Template for the riak.conf file")

	DownloadURLRHELCentOS = sensor.NewConfigKey[string]("download.url.rhelcentos", "Package URL for RHEL and CentOS")
	DownloadURLUbuntu     = sensor.NewConfigKey[string]("download.url.ubuntu", "Package URL for Ubuntu")
	DownloadURLDebian     = sensor.NewConfigKey[string]("download.url.debian", "Package URL for Debian")

	SuggestedVersion = sensor.NewConfigKeyWithDefault("install.version", "Riak version", defaultVersion)

	WebPortConfig              = sensor.NewConfigKeyWithDefault("riak.webPort", "Riak HTTP port", models.SinglePort(8098))
	PBPortConfig               = sensor.NewConfigKeyWithDefault("riak.pbPort", "Riak protocol buffers port", models.SinglePort(8087))
	HandoffListenerPortConfig  = sensor.NewConfigKeyWithDefault("handoffListenerPort", "Handoff listener port", models.SinglePort(8099))
	EPMDListenerPortConfig     = sensor.NewConfigKeyWithDefault("epmdListenerPort", "Erlang port mapper daemon port", models.SinglePort(4369))
	ErlangPortRangeStartConfig = sensor.NewConfigKeyWithDefault("erlangPortRangeStart", "Start of the Erlang port range", models.SinglePort(6000))
	ErlangPortRangeEndConfig   = sensor.NewConfigKeyWithDefault("erlangPortRangeEnd", "End of the Erlang port range", models.SinglePort(7999))
	SearchSolrPortConfig       = sensor.NewConfigKeyWithDefault("search.solr.port", "Solr search port", models.SinglePort(8093))
	SearchSolrJMXPortConfig    = sensor.NewConfigKeyWithDefault("search.solr.jmx_port", "Solr JMX port", models.SinglePort(8985))
)

// Config is the on-disk description of one Riak node.
type Config struct {
	ID       string `json:"id"`
	Host     string `json:"host"`
	NodeName string `json:"node_name,omitempty"`

	VMArgsTemplateURL    string `json:"vm_args_template_url"`
	AppConfigTemplateURL string `json:"app_config_template_url"`

	DownloadURLRHELCentOS string `json:"download_url_rhel_centos,omitempty"`
	DownloadURLUbuntu     string `json:"download_url_ubuntu,omitempty"`
	DownloadURLDebian     string `json:"download_url_debian,omitempty"`

	Version string `json:"version,omitempty"`

	WebPort              *models.PortRange `json:"web_port,omitempty"`
	PBPort               *models.PortRange `json:"pb_port,omitempty"`
	HandoffListenerPort  *models.PortRange `json:"handoff_listener_port,omitempty"`
	EPMDListenerPort     *models.PortRange `json:"epmd_listener_port,omitempty"`
	ErlangPortRangeStart *models.PortRange `json:"erlang_port_range_start,omitempty"`
	ErlangPortRangeEnd   *models.PortRange `json:"erlang_port_range_end,omitempty"`
	SearchSolrPort       *models.PortRange `json:"search_solr_port,omitempty"`
	SearchSolrJMXPort    *models.PortRange `json:"search_solr_jmx_port,omitempty"`

	StatsPeriod     models.Duration `json:"stats_period,omitempty"`
	ProbeTimeout    models.Duration `json:"probe_timeout,omitempty"`
	ServiceUpPeriod models.Duration `json:"service_up_period,omitempty"`

	// AddressMappings maps internal host:port pairs to the address the
	// management plane must use, for nodes behind NAT.
	AddressMappings map[string]string `json:"address_mappings,omitempty"`

	// OpenPorts and ProvisioningFlags are inherited by the provisioning advice.
	OpenPorts         []int          `json:"open_ports,omitempty"`
	ProvisioningFlags map[string]any `json:"provisioning_flags,omitempty"`

	RiakBinary      string `json:"riak_binary,omitempty"`
	RiakAdminBinary string `json:"riak_admin_binary,omitempty"`
}

// Validate checks structural problems only. Missing templates are reported
// when the node initializes, before any infrastructure is touched.
func (c *Config) Validate() error {
	if c.ID == "" {
		return errIDRequired
	}

	if c.Host == "" {
		return errHostRequired
	}

	for key, tmpl := range map[string]string{
		"vm_args_template_url":    c.VMArgsTemplateURL,
		"app_config_template_url": c.AppConfigTemplateURL,
	} {
		if tmpl == "" {
			continue
		}

		if _, err := url.Parse(tmpl); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	if c.NodeName == "" {
		c.NodeName = "riak@" + c.Host
	}

	return nil
}

// Bag exposes the explicitly configured values as config keys. Unset fields
// are absent, so key defaults apply.
func (c *Config) Bag() sensor.Bag {
	bag := sensor.Bag{}

	putString := func(k sensor.ConfigKey[string], v string) {
		if v != "" {
			bag[k.Key()] = v
		}
	}

	putPort := func(k sensor.ConfigKey[models.PortRange], v *models.PortRange) {
		if v != nil {
			bag[k.Key()] = *v
		}
	}

	putString(VMArgsTemplateURL, c.VMArgsTemplateURL)
	putString(AppConfigTemplateURL, c.AppConfigTemplateURL)
	putString(DownloadURLRHELCentOS, c.DownloadURLRHELCentOS)
	putString(DownloadURLUbuntu, c.DownloadURLUbuntu)
	putString(DownloadURLDebian, c.DownloadURLDebian)
	putString(SuggestedVersion, c.Version)

	putPort(WebPortConfig, c.WebPort)
	putPort(PBPortConfig, c.PBPort)
	putPort(HandoffListenerPortConfig, c.HandoffListenerPort)
	putPort(EPMDListenerPortConfig, c.EPMDListenerPort)
	putPort(ErlangPortRangeStartConfig, c.ErlangPortRangeStart)
	putPort(ErlangPortRangeEndConfig, c.ErlangPortRangeEnd)
	putPort(SearchSolrPortConfig, c.SearchSolrPort)
	putPort(SearchSolrJMXPortConfig, c.SearchSolrJMXPort)

	return bag
}
