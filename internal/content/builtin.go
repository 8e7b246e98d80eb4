// Package content supplies the built-in question set and loads optional
// question packs from YAML files.
package content

import "github.com/tuxprep/trainer/internal/domain/question"

// Builtin returns the static question set compiled into the binary. The
// selection leans on the CompTIA Linux+ exam domains so the trainer is
// useful without any external packs.
func Builtin() []question.Record {
	return []question.Record{
		{
			Text:         "Which command displays the currently mounted filesystems along with their disk usage?",
			Options:      []string{"df -h", "du -sh", "lsblk -f", "mount -a"},
			CorrectIndex: 0,
			Category:     "System Management",
			Explanation:  "df reports usage per mounted filesystem; du measures directories, lsblk lists block devices, and mount -a mounts fstab entries.",
		},
		{
			Text:         "Which file controls filesystems mounted automatically at boot?",
			Options:      []string{"/etc/mtab", "/proc/mounts", "/etc/fstab", "/etc/exports"},
			CorrectIndex: 2,
			Category:     "System Management",
			Explanation:  "/etc/fstab is read at boot (and by mount -a). /etc/mtab and /proc/mounts reflect current state, /etc/exports is for NFS.",
		},
		{
			Text:         "Which systemd command shows why a unit failed to start?",
			Options:      []string{"systemctl cat unit", "systemctl status unit", "systemd-analyze blame", "journalctl --list-boots"},
			CorrectIndex: 1,
			Category:     "System Management",
			Explanation:  "systemctl status shows the unit's state, last exit code, and recent log lines.",
		},
		{
			Text:         "Which command makes a systemd service start at every boot?",
			Options:      []string{"systemctl start svc", "systemctl enable svc", "systemctl reload svc", "systemctl mask svc"},
			CorrectIndex: 1,
			Category:     "System Management",
			Explanation:  "enable creates the wants symlinks; start only affects the current boot, and mask blocks the unit entirely.",
		},
		{
			Text:         "A process must be terminated immediately and cannot clean up. Which signal does that?",
			Options:      []string{"SIGTERM (15)", "SIGHUP (1)", "SIGINT (2)", "SIGKILL (9)"},
			CorrectIndex: 3,
			Category:     "System Management",
			Explanation:  "SIGKILL cannot be caught or ignored. SIGTERM is the polite default and allows cleanup handlers to run.",
		},
		{
			Text:         "Which command changes the owner and group of a file in one step?",
			Options:      []string{"chmod user:group file", "chown user:group file", "chgrp user:group file", "usermod -g group file"},
			CorrectIndex: 1,
			Category:     "Security",
			Explanation:  "chown accepts user:group. chmod changes mode bits and chgrp only the group.",
		},
		{
			Text:         "What does the permission mode 4755 on an executable mean?",
			Options:      []string{"Sticky bit set", "SETUID set", "SETGID set", "World-writable"},
			CorrectIndex: 1,
			Category:     "Security",
			Explanation:  "The leading 4 is the SETUID bit: the program runs with the file owner's effective UID. 2 would be SETGID and 1 the sticky bit.",
		},
		{
			Text:         "Which file stores the hashed passwords of local users?",
			Options:      []string{"/etc/passwd", "/etc/shadow", "/etc/group", "/etc/login.defs"},
			CorrectIndex: 1,
			Category:     "Security",
			Explanation:  "/etc/shadow is root-readable and holds the hashes; /etc/passwd only keeps an 'x' placeholder.",
		},
		{
			Text:         "Which command lists the rules of the default firewalld zone?",
			Options:      []string{"firewall-cmd --list-all", "iptables --zones", "nft list zones", "ufw status verbose"},
			CorrectIndex: 0,
			Category:     "Security",
			Explanation:  "firewall-cmd --list-all prints services, ports and rules of the active zone.",
		},
		{
			Text:         "SELinux is blocking a service from reading a file. Which command shows recent denials?",
			Options:      []string{"getenforce", "sestatus -v", "ausearch -m avc -ts recent", "semanage fcontext -l"},
			CorrectIndex: 2,
			Category:     "Security",
			Explanation:  "AVC denial records land in the audit log; ausearch -m avc filters them. getenforce and sestatus only show the mode.",
		},
		{
			Text:         "Which command shows listening TCP sockets together with the owning process?",
			Options:      []string{"ss -tlnp", "ip addr show", "arp -a", "route -n"},
			CorrectIndex: 0,
			Category:     "Networking",
			Explanation:  "ss -tlnp lists listening TCP sockets numerically with PIDs; the other commands cover addresses, ARP, and routing.",
		},
		{
			Text:         "Which command adds a temporary default route via 192.168.1.1?",
			Options:      []string{"ip route add default via 192.168.1.1", "ip addr add default 192.168.1.1", "nmcli route default 192.168.1.1", "route default gw persistent"},
			CorrectIndex: 0,
			Category:     "Networking",
			Explanation:  "ip route add default via <gw> changes the running table only; persistence needs the network manager's config.",
		},
		{
			Text:         "Which file is consulted first to resolve a hostname with the default nsswitch order?",
			Options:      []string{"/etc/resolv.conf", "/etc/hosts", "/etc/networks", "/etc/hostname"},
			CorrectIndex: 1,
			Category:     "Networking",
			Explanation:  "The usual 'hosts: files dns' order checks /etc/hosts before the resolvers in /etc/resolv.conf.",
		},
		{
			Text:         "Which tool traces the network path to a host while continuously updating statistics?",
			Options:      []string{"ping -f", "mtr", "dig +trace", "tcpdump -w"},
			CorrectIndex: 1,
			Category:     "Networking",
			Explanation:  "mtr combines traceroute and ping into a live per-hop view.",
		},
		{
			Text:         "In a Bash script, what does \"$@\" expand to?",
			Options:      []string{"The number of arguments", "All arguments as separate words", "The script's PID", "The last command's exit status"},
			CorrectIndex: 1,
			Category:     "Scripting & Automation",
			Explanation:  "Quoted $@ preserves each positional parameter as its own word. $# counts them, $$ is the PID, $? the exit status.",
		},
		{
			Text:         "Which crontab entry runs a job at 02:30 every Monday?",
			Options:      []string{"30 2 * * 1", "2 30 * * 1", "30 2 1 * *", "* 2:30 * * mon"},
			CorrectIndex: 0,
			Category:     "Scripting & Automation",
			Explanation:  "Fields are minute, hour, day-of-month, month, day-of-week; 1 is Monday.",
		},
		{
			Text:         "Which construct exits a Bash script immediately when any command fails?",
			Options:      []string{"set -e", "trap ERR", "exit $?", "set -u"},
			CorrectIndex: 0,
			Category:     "Scripting & Automation",
			Explanation:  "set -e (errexit) aborts on a non-zero status; set -u only guards unset variables.",
		},
		{
			Text:         "A filesystem reports no space but df shows free blocks. What should you check?",
			Options:      []string{"Inode usage with df -i", "Swap usage with free", "Mount options in fstab", "Disk scheduler settings"},
			CorrectIndex: 0,
			Category:     "Troubleshooting",
			Explanation:  "Exhausted inodes produce 'no space left' with free blocks remaining; df -i reveals it.",
		},
		{
			Text:         "Which command shows the kernel ring buffer to diagnose a driver problem?",
			Options:      []string{"dmesg", "lsmod", "sysctl -a", "uname -a"},
			CorrectIndex: 0,
			Category:     "Troubleshooting",
			Explanation:  "dmesg prints kernel messages, including device and driver errors; lsmod only lists loaded modules.",
		},
		{
			Text:         "Load average is high but CPU usage is low. Which is the most likely cause?",
			Options:      []string{"Too many zombie processes", "Processes blocked on I/O", "CPU frequency scaling", "An idle runqueue"},
			CorrectIndex: 1,
			Category:     "Troubleshooting",
			Explanation:  "Tasks in uninterruptible sleep (state D, usually disk I/O) count toward load without consuming CPU.",
		},
	}
}
